package inventory

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

const (
	goodsPath    = "/mercadorias"
	stockInPath  = "/entradas"
	stockOutPath = "/saidas"
)

// Client exposes the inventory backend operations used by the forms.
type Client interface {
	ListGoods(ctx context.Context) ([]models.Goods, error)
	CreateGoods(ctx context.Context, goods models.Goods) (*MutationResult, error)
	RecordStockIn(ctx context.Context, draft models.TransactionDraft) (*MutationResult, error)
	RecordStockOut(ctx context.Context, draft models.TransactionDraft) (*MutationResult, error)
	UpdateGoods(ctx context.Context, id int64, draft models.TransactionDraft) (*MutationResult, error)
	DeleteGoods(ctx context.Context, id int64) (*MutationResult, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds an inventory API client using the provided configuration values.
func NewClient(cfg config.InventoryConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	return &APIClient{httpClient: restyClient}
}

// MutationResult is the backend's answer to a write call. The backend signals
// success with either an explicit flag or a message.
type MutationResult struct {
	StatusCode int    `json:"-"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
}

// Accepted reports whether the backend acknowledged the write. Only the body
// counts: a message is an acknowledgement whatever the status.
func (r *MutationResult) Accepted() bool {
	if r == nil {
		return false
	}
	return r.Success || r.Message != ""
}

// Failed reports whether the backend answered with an error status.
func (r *MutationResult) Failed() bool {
	return r == nil || r.StatusCode >= http.StatusBadRequest
}

// APIError is returned when the backend answers a read with an error status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("inventory api error: status=%d, message=%s", e.StatusCode, e.Message)
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (b *errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

// ListGoods fetches the whole goods catalog.
func (c *APIClient) ListGoods(ctx context.Context) ([]models.Goods, error) {
	var catalog []models.Goods
	apiErr := new(errorBody)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&catalog).
		SetError(apiErr).
		Get(goodsPath)
	if err != nil {
		return nil, fmt.Errorf("list goods: %w", err)
	}

	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: apiErr.text()}
	}

	return catalog, nil
}

// CreateGoods registers a new catalog entry.
func (c *APIClient) CreateGoods(ctx context.Context, goods models.Goods) (*MutationResult, error) {
	payload := map[string]any{
		"nome":            goods.Name,
		"numero_registro": goods.RegistrationNumber,
		"fabricante":      goods.Manufacturer,
		"tipo":            goods.Type,
		"descricao":       goods.Description,
	}
	return c.mutate(ctx, http.MethodPost, goodsPath, payload, "create goods")
}

// RecordStockIn posts the draft as a stock-in movement.
func (c *APIClient) RecordStockIn(ctx context.Context, draft models.TransactionDraft) (*MutationResult, error) {
	return c.mutate(ctx, http.MethodPost, stockInPath, draft, "record stock in")
}

// RecordStockOut posts the draft as a stock-out movement.
func (c *APIClient) RecordStockOut(ctx context.Context, draft models.TransactionDraft) (*MutationResult, error) {
	return c.mutate(ctx, http.MethodPost, stockOutPath, draft, "record stock out")
}

// UpdateGoods replaces the goods identified by id with the draft values.
func (c *APIClient) UpdateGoods(ctx context.Context, id int64, draft models.TransactionDraft) (*MutationResult, error) {
	return c.mutate(ctx, http.MethodPut, goodsItemPath(id), draft, "update goods")
}

// DeleteGoods removes the goods identified by id. Error statuses are reported
// through the result, not as an error.
func (c *APIClient) DeleteGoods(ctx context.Context, id int64) (*MutationResult, error) {
	return c.mutate(ctx, http.MethodDelete, goodsItemPath(id), nil, "delete goods")
}

func (c *APIClient) mutate(ctx context.Context, method, path string, body any, op string) (*MutationResult, error) {
	result := new(MutationResult)

	req := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(result)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result.StatusCode = resp.StatusCode()
	return result, nil
}

func goodsItemPath(id int64) string {
	return fmt.Sprintf("%s/%d", goodsPath, id)
}
