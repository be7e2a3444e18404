package registration

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/pkg/clients/inventory"
)

type MockInventoryClient struct {
	mock.Mock
	inventory.Client
}

func (m *MockInventoryClient) CreateGoods(ctx context.Context, goods models.Goods) (*inventory.MutationResult, error) {
	args := m.Called(goods)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.MutationResult), args.Error(1)
}

func TestSubmit(t *testing.T) {
	input := models.Goods{ID: 99, Name: "  Máscara PFF2 ", RegistrationNumber: "CA-1", Manufacturer: "3M", Type: "EPI"}
	sent := models.Goods{Name: "Máscara PFF2", RegistrationNumber: "CA-1", Manufacturer: "3M", Type: "EPI"}

	tests := []struct {
		name         string
		result       *inventory.MutationResult
		err          error
		wantSuccess  string
		wantError    string
		wantRefreshs int
	}{
		{name: "created", result: &inventory.MutationResult{StatusCode: http.StatusCreated, Success: true}, wantSuccess: msgRegistered, wantRefreshs: 1},
		{name: "server message", result: &inventory.MutationResult{StatusCode: http.StatusCreated, Message: "Cadastrada #5"}, wantSuccess: "Cadastrada #5", wantRefreshs: 1},
		{name: "duplicate", result: &inventory.MutationResult{StatusCode: http.StatusConflict, Message: "Registro já existe"}, wantError: "Registro já existe"},
		{name: "empty payload", result: &inventory.MutationResult{StatusCode: http.StatusOK}, wantError: msgRegisterFail},
		{name: "transport", err: errors.New("refused"), wantError: msgRegisterFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockInventoryClient)
			refreshes := 0
			form := NewForm("s", client, nil, func() { refreshes++ }, nil)
			client.On("CreateGoods", sent).Return(tt.result, tt.err).Once()

			require.NoError(t, form.Submit(context.Background(), input))

			view := form.Render()
			assert.Equal(t, tt.wantSuccess, view.Success)
			assert.Equal(t, tt.wantError, view.Error)
			assert.Equal(t, tt.wantRefreshs, refreshes)
			if tt.wantRefreshs > 0 {
				assert.Equal(t, models.Goods{}, view.Goods)
			} else {
				assert.Equal(t, sent, view.Goods)
			}
			client.AssertExpectations(t)
		})
	}
}

func TestSubmitRequiresName(t *testing.T) {
	client := new(MockInventoryClient)
	form := NewForm("s", client, nil, nil, nil)

	err := form.Submit(context.Background(), models.Goods{Name: "   ", Type: "EPI"})

	assert.ErrorIs(t, err, ErrNameRequired)
	assert.Equal(t, msgNameRequired, form.Render().Error)
	assert.Equal(t, "EPI", form.Render().Goods.Type)
	client.AssertNotCalled(t, "CreateGoods", mock.Anything)
}
