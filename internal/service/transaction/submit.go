package transaction

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/pkg/clients/inventory"
)

const (
	msgStockInDone     = "Entrada registrada com sucesso!"
	msgStockOutDone    = "Saída registrada com sucesso!"
	msgStockFailed     = "Erro ao registrar a mercadoria. Tente novamente."
	msgInvalidQuantity = "Quantidade inválida. Informe um número maior que zero."
)

// Submit records the draft as a stock movement in the direction of the active
// mode. Backend failures end up in the error banner, not in the returned error;
// the returned error only says the request was not attempted or was dropped.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if err := f.beginLocked(models.Mode.IsStock); err != nil {
		f.mu.Unlock()
		return err
	}
	if err := validateQuantity(f.draft.Quantity); err != nil {
		f.busy = false
		f.feedback.SetError(msgInvalidQuantity)
		f.mu.Unlock()
		return err
	}
	draft := f.draft
	stockIn := f.mode == models.ModeStockIn
	f.mu.Unlock()

	var (
		res *inventory.MutationResult
		err error
	)
	if stockIn {
		res, err = f.client.RecordStockIn(ctx, draft)
	} else {
		res, err = f.client.RecordStockOut(ctx, draft)
	}

	record := models.ActivityRecord{
		Kind:      models.ActivityStockOut,
		GoodsID:   draft.GoodsID,
		GoodsName: draft.Name,
		Quantity:  draft.Quantity,
		Location:  draft.Location,
	}
	if stockIn {
		record.Kind = models.ActivityStockIn
	}

	f.mu.Lock()
	if !f.finishLocked() {
		f.mu.Unlock()
		return ErrClosed
	}
	switch {
	case err != nil:
		f.logger.Error("failed to record stock movement", zap.String("session_id", f.sessionID), zap.Bool("stock_in", stockIn), zap.Error(err))
		f.feedback.SetError(msgStockFailed)
		record.Outcome, record.Message = models.OutcomeFailed, err.Error()
	case !res.Accepted():
		f.logger.Warn("stock movement rejected", zap.String("session_id", f.sessionID), zap.Int("status", res.StatusCode), zap.String("message", res.Message))
		f.feedback.SetError(msgStockFailed)
		record.Outcome, record.Message = models.OutcomeRejected, res.Message
	default:
		msg := res.Message
		if msg == "" {
			msg = msgStockOutDone
			if stockIn {
				msg = msgStockInDone
			}
		}
		f.feedback.SetSuccess(msg)
		f.draft.ResetMovement()
		record.Outcome, record.Message = models.OutcomeSucceeded, msg
	}
	f.mu.Unlock()

	f.record(ctx, record)
	return nil
}

// validateQuantity accepts an empty quantity (the backend decides) or a
// positive decimal.
func validateQuantity(raw string) error {
	if raw == "" {
		return nil
	}
	q, err := decimal.NewFromString(raw)
	if err != nil || !q.IsPositive() {
		return ErrInvalidQuantity
	}
	return nil
}
