package registration

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/service/activity"
	"github.com/mamadbah2/stockdesk/pkg/clients/inventory"
)

var (
	// ErrNameRequired indicates the goods name was left blank.
	ErrNameRequired = errors.New("goods name is required")
	// ErrBusy indicates a registration is already in flight.
	ErrBusy = errors.New("registration already in progress")
)

const (
	msgRegistered   = "Mercadoria cadastrada com sucesso!"
	msgRegisterFail = "Erro ao cadastrar a mercadoria. Tente novamente."
	msgNameRequired = "Informe o nome da mercadoria."
)

// View is what the registration sub-form renders.
type View struct {
	Goods   models.Goods
	Success string
	Error   string
}

// Form registers new catalog entries and tells the parent to refresh when
// one was created.
type Form struct {
	mu sync.Mutex

	sessionID string
	client    inventory.Client
	journal   activity.Recorder
	refresh   func()
	logger    *zap.Logger

	goods    models.Goods
	feedback models.Feedback
	busy     bool
}

// NewForm wires a registration form.
func NewForm(sessionID string, client inventory.Client, journal activity.Recorder, refresh func(), logger *zap.Logger) *Form {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Form{
		sessionID: sessionID,
		client:    client,
		journal:   journal,
		refresh:   refresh,
		logger:    logger,
	}
}

// Render returns the current input and banners.
func (f *Form) Render() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return View{Goods: f.goods, Success: f.feedback.Success, Error: f.feedback.Error}
}

// Submit sends goods to the backend. The id is always assigned by the backend.
func (f *Form) Submit(ctx context.Context, goods models.Goods) error {
	goods.ID = 0
	goods.Name = strings.TrimSpace(goods.Name)

	f.mu.Lock()
	f.goods = goods
	if goods.Name == "" {
		f.feedback.SetError(msgNameRequired)
		f.mu.Unlock()
		return ErrNameRequired
	}
	if f.busy {
		f.mu.Unlock()
		return ErrBusy
	}
	f.busy = true
	f.mu.Unlock()

	res, err := f.client.CreateGoods(ctx, goods)

	record := models.ActivityRecord{Kind: models.ActivityRegister, GoodsName: goods.Name}
	created := false

	f.mu.Lock()
	f.busy = false
	switch {
	case err != nil:
		f.logger.Error("failed to register goods", zap.String("session_id", f.sessionID), zap.Error(err))
		f.feedback.SetError(msgRegisterFail)
		record.Outcome, record.Message = models.OutcomeFailed, err.Error()
	case res.Failed() || !res.Accepted():
		f.logger.Warn("goods registration rejected", zap.String("session_id", f.sessionID), zap.Int("status", res.StatusCode), zap.String("message", res.Message))
		msg := msgRegisterFail
		if res.Failed() && res.Message != "" {
			msg = res.Message
		}
		f.feedback.SetError(msg)
		record.Outcome, record.Message = models.OutcomeRejected, res.Message
	default:
		msg := res.Message
		if msg == "" {
			msg = msgRegistered
		}
		f.feedback.SetSuccess(msg)
		f.goods = models.Goods{}
		created = true
		record.Outcome, record.Message = models.OutcomeSucceeded, msg
	}
	f.mu.Unlock()

	if f.journal != nil {
		record.SessionID = f.sessionID
		f.journal.Record(ctx, record)
	}
	if created && f.refresh != nil {
		f.refresh()
	}
	return nil
}
