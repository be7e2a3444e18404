package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// ValuesAppender is the slice of the Sheets API the repository needs.
type ValuesAppender interface {
	Append(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error
}

// ActivitySheetRepository exports journal entries as spreadsheet rows.
type ActivitySheetRepository struct {
	appender      ValuesAppender
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewActivitySheetRepository builds a repository backed by the official Google Sheets API.
func NewActivitySheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*ActivitySheetRepository, error) {
	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return NewActivitySheetRepositoryWith(&apiAppender{service: service}, cfg, logger), nil
}

// NewActivitySheetRepositoryWith wires the repository over any appender.
func NewActivitySheetRepositoryWith(appender ValuesAppender, cfg config.SheetsConfig, logger *zap.Logger) *ActivitySheetRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivitySheetRepository{
		appender:      appender,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.ActivityRange,
		logger:        logger,
	}
}

// SaveActivity appends the record as one row:
// at | kind | goods id | goods name | quantity | location | outcome | message.
func (r *ActivitySheetRepository) SaveActivity(ctx context.Context, record models.ActivityRecord) error {
	if r.sheetRange == "" {
		return fmt.Errorf("sheet range must not be empty")
	}

	row := []interface{}{
		record.At.In(time.Local).Format(timestampLayout),
		string(record.Kind),
		record.GoodsID,
		record.GoodsName,
		record.Quantity,
		record.Location,
		string(record.Outcome),
		record.Message,
	}

	if err := r.appender.Append(ctx, r.spreadsheetID, r.sheetRange, [][]interface{}{row}); err != nil {
		return fmt.Errorf("append activity into range %s: %w", r.sheetRange, err)
	}

	r.logger.Debug("activity row appended", zap.String("range", r.sheetRange), zap.String("kind", string(record.Kind)))
	return nil
}

// apiAppender writes values as RAW so user text such as goods names is never
// parsed as a formula.
type apiAppender struct {
	service *sheetsapi.Service
}

func (a *apiAppender) Append(ctx context.Context, spreadsheetID, sheetRange string, values [][]interface{}) error {
	payload := &sheetsapi.ValueRange{Values: values}

	_, err := a.service.Spreadsheets.Values.Append(spreadsheetID, sheetRange, payload).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}
