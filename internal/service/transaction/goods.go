package transaction

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

const (
	msgUpdateDone       = "Mercadoria atualizada com sucesso!"
	msgUpdateRejected   = "Não foi possível atualizar a mercadoria."
	msgUpdateFailed     = "Erro ao atualizar a mercadoria. Tente novamente."
	msgSelectToUpdate   = "Selecione uma mercadoria para atualizar."
	msgSelectToDelete   = "Selecione uma mercadoria para excluir."
	msgDeleteDone       = "Mercadoria excluída com sucesso!"
	msgDeleteProblem    = "Ocorreu um problema ao tentar excluir a mercadoria."
	msgDeleteFailed     = "Erro ao excluir mercadoria."
	DeleteConfirmPrompt = "Tem certeza que deseja excluir esta mercadoria?"
)

// Update sends the draft to the backend for the selected goods. Whatever the
// backend answers, its message is alerted, the draft is cleared and the
// parent refreshed; only a transport failure keeps the draft and shows the
// error banner.
func (f *Form) Update(ctx context.Context) error {
	f.mu.Lock()
	if err := f.beginLocked(isUpdate); err != nil {
		f.mu.Unlock()
		return err
	}
	if !f.draft.HasSelection() {
		f.busy = false
		f.feedback.SetError(msgSelectToUpdate)
		f.mu.Unlock()
		return ErrNoSelection
	}
	draft := f.draft
	f.mu.Unlock()

	res, err := f.client.UpdateGoods(ctx, draft.GoodsID, draft)

	record := models.ActivityRecord{Kind: models.ActivityUpdate, GoodsID: draft.GoodsID, GoodsName: draft.Name}

	f.mu.Lock()
	if !f.finishLocked() {
		f.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		f.logger.Error("failed to update goods", zap.String("session_id", f.sessionID), zap.Int64("goods_id", draft.GoodsID), zap.Error(err))
		f.feedback.SetError(msgUpdateFailed)
		f.mu.Unlock()

		record.Outcome, record.Message = models.OutcomeFailed, err.Error()
		f.record(ctx, record)
		return nil
	}

	msg := res.Message
	record.Outcome = models.OutcomeSucceeded
	if res.Failed() {
		// Still alerted and cleared like a success, but logged and journaled as rejected.
		f.logger.Warn("goods update rejected", zap.String("session_id", f.sessionID), zap.Int64("goods_id", draft.GoodsID), zap.Int("status", res.StatusCode), zap.String("message", res.Message))
		record.Outcome = models.OutcomeRejected
		if msg == "" {
			msg = msgUpdateRejected
		}
	} else if msg == "" {
		msg = msgUpdateDone
	}
	record.Message = msg
	f.feedback.Alert = msg
	f.clearSelectionLocked()
	f.mu.Unlock()

	f.record(ctx, record)
	f.notifyParent()
	return nil
}

// Delete removes the selected goods once the user confirmed. Without
// confirmation nothing is sent.
func (f *Form) Delete(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	f.mu.Lock()
	if err := f.beginLocked(isUpdate); err != nil {
		f.mu.Unlock()
		return err
	}
	if !f.draft.HasSelection() {
		f.busy = false
		f.feedback.SetError(msgSelectToDelete)
		f.mu.Unlock()
		return ErrNoSelection
	}
	id, name := f.draft.GoodsID, f.draft.Name
	f.mu.Unlock()

	res, err := f.client.DeleteGoods(ctx, id)

	record := models.ActivityRecord{Kind: models.ActivityDelete, GoodsID: id, GoodsName: name}
	deleted := false

	f.mu.Lock()
	if !f.finishLocked() {
		f.mu.Unlock()
		return ErrClosed
	}
	switch {
	case err != nil:
		f.logger.Error("failed to delete goods", zap.String("session_id", f.sessionID), zap.Int64("goods_id", id), zap.Error(err))
		f.feedback.Alert = msgDeleteFailed
		record.Outcome, record.Message = models.OutcomeFailed, err.Error()
	case res.StatusCode == http.StatusOK:
		msg := res.Message
		if msg == "" {
			msg = msgDeleteDone
		}
		f.feedback.Alert = msg
		f.clearSelectionLocked()
		deleted = true
		record.Outcome, record.Message = models.OutcomeSucceeded, msg
	case res.StatusCode == http.StatusBadRequest:
		msg := res.Message
		if msg == "" {
			msg = msgDeleteProblem
		}
		f.feedback.Alert = msg
		record.Outcome, record.Message = models.OutcomeRejected, msg
	default:
		f.logger.Warn("unexpected delete status", zap.String("session_id", f.sessionID), zap.Int64("goods_id", id), zap.Int("status", res.StatusCode))
		f.feedback.Alert = msgDeleteProblem
		record.Outcome, record.Message = models.OutcomeFailed, res.Message
	}
	f.mu.Unlock()

	f.record(ctx, record)
	if deleted {
		f.notifyParent()
	}
	return nil
}

// clearSelectionLocked returns Update mode to its no-selection state.
func (f *Form) clearSelectionLocked() {
	f.draft.Clear()
	f.query = ""
	f.hideSuggestions = false
	f.filtered = FilterGoods(f.catalog, "")
}
