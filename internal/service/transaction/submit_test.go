package transaction

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/pkg/clients/inventory"
)

func TestSubmitAgainstBackendTrustsBodyOverStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/mercadorias":
			_, _ = io.WriteString(w, `[[7,"Gauze","R123","AcmeCo","Consumable",""]]`)
		case "/entradas":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"message":"Entrada registrada"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	client := inventory.NewClient(config.InventoryConfig{BaseURL: srv.URL, Timeout: 2 * time.Second})
	form := NewForm("session-1", client, nil, nil, nil)
	require.NoError(t, form.Load(context.Background()))

	form.SelectStockIn()
	require.NoError(t, form.UpdateDraft(func(d *models.TransactionDraft) {
		d.GoodsID = 7
		d.Quantity = "3"
		d.Location = "Farmácia"
		d.Name = "Gauze"
	}))

	require.NoError(t, form.Submit(context.Background()))

	view := form.Render()
	assert.Equal(t, "Entrada registrada", view.Success)
	assert.Empty(t, view.Error)
	assert.Zero(t, view.Draft.GoodsID)
	assert.Empty(t, view.Draft.Quantity)
	assert.Empty(t, view.Draft.Location)
	assert.Equal(t, "Gauze", view.Draft.Name)
}
