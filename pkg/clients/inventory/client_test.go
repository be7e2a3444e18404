package inventory

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

func newTestClient(t *testing.T, status int, response string) (*APIClient, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	return NewClient(config.InventoryConfig{BaseURL: srv.URL + "/", Timeout: 2 * time.Second}), rec
}

func TestListGoods(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK, `[[7,"Gauze","R123","AcmeCo","Consumable","Sterile gauze"],[8,"Luva","R2","Fab","EPI",""]]`)

	catalog, err := client.ListGoods(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.Method)
	assert.Equal(t, "/mercadorias", rec.Path)
	require.Len(t, catalog, 2)
	assert.Equal(t, "Gauze", catalog[0].Name)
	assert.Equal(t, int64(8), catalog[1].ID)
}

func TestListGoodsErrorStatus(t *testing.T) {
	client, _ := newTestClient(t, http.StatusInternalServerError, `{"error":"db down"}`)

	_, err := client.ListGoods(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "db down", apiErr.Message)
}

func TestListGoodsTransportError(t *testing.T) {
	client := NewClient(config.InventoryConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})

	_, err := client.ListGoods(context.Background())
	assert.ErrorContains(t, err, "list goods")
}

func TestRecordStockMovements(t *testing.T) {
	draft := models.TransactionDraft{GoodsID: 7, Quantity: "3", Timestamp: "2024-05-01T08:30", Location: "Farmácia", Name: "Gauze"}

	tests := []struct {
		name string
		call func(c *APIClient) (*MutationResult, error)
		path string
	}{
		{name: "stock in", call: func(c *APIClient) (*MutationResult, error) { return c.RecordStockIn(context.Background(), draft) }, path: "/entradas"},
		{name: "stock out", call: func(c *APIClient) (*MutationResult, error) { return c.RecordStockOut(context.Background(), draft) }, path: "/saidas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, rec := newTestClient(t, http.StatusCreated, `{"success":true}`)

			res, err := tt.call(client)
			require.NoError(t, err)

			assert.True(t, res.Accepted())
			assert.Equal(t, http.MethodPost, rec.Method)
			assert.Equal(t, tt.path, rec.Path)
			assert.Equal(t, float64(7), rec.Body["mercadoria_id"])
			assert.Equal(t, "3", rec.Body["quantidade"])
			assert.Equal(t, "Farmácia", rec.Body["local"])
			assert.Equal(t, "Gauze", rec.Body["nome"])
		})
	}
}

func TestMutationResultAccepted(t *testing.T) {
	tests := []struct {
		name   string
		result *MutationResult
		want   bool
	}{
		{name: "nil", result: nil, want: false},
		{name: "success flag", result: &MutationResult{StatusCode: 200, Success: true}, want: true},
		{name: "message only", result: &MutationResult{StatusCode: 200, Message: "ok"}, want: true},
		{name: "empty payload", result: &MutationResult{StatusCode: 200}, want: false},
		{name: "error status with message", result: &MutationResult{StatusCode: 400, Message: "Entrada registrada"}, want: true},
		{name: "error status without body", result: &MutationResult{StatusCode: 500}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Accepted())
		})
	}
}

func TestUpdateGoods(t *testing.T) {
	client, rec := newTestClient(t, http.StatusOK, `{"message":"Mercadoria atualizada"}`)

	res, err := client.UpdateGoods(context.Background(), 12, models.TransactionDraft{GoodsID: 12, Name: "Novo nome"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, rec.Method)
	assert.Equal(t, "/mercadorias/12", rec.Path)
	assert.Equal(t, "Novo nome", rec.Body["nome"])
	assert.Equal(t, "Mercadoria atualizada", res.Message)
	assert.False(t, res.Failed())
}

func TestDeleteGoodsReportsStatus(t *testing.T) {
	client, rec := newTestClient(t, http.StatusBadRequest, `{"message":"In use"}`)

	res, err := client.DeleteGoods(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, rec.Method)
	assert.Equal(t, "/mercadorias/5", rec.Path)
	assert.Nil(t, rec.Body)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "In use", res.Message)
	assert.True(t, res.Failed())
}

func TestCreateGoods(t *testing.T) {
	client, rec := newTestClient(t, http.StatusCreated, `{"message":"Mercadoria cadastrada"}`)

	res, err := client.CreateGoods(context.Background(), models.Goods{Name: "Máscara", RegistrationNumber: "R5", Manufacturer: "3M", Type: "EPI", Description: "PFF2"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/mercadorias", rec.Path)
	assert.Equal(t, "Máscara", rec.Body["nome"])
	assert.Equal(t, "PFF2", rec.Body["descricao"])
	assert.NotContains(t, rec.Body, "id")
	assert.True(t, res.Accepted())
}
