package transaction

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/service/activity"
	"github.com/mamadbah2/stockdesk/pkg/clients/inventory"
)

var (
	// ErrBusy indicates another mutation of the same form is still in flight.
	ErrBusy = errors.New("operation already in progress")
	// ErrClosed indicates the form was torn down.
	ErrClosed = errors.New("form closed")
	// ErrWrongMode indicates the action is not available in the active mode.
	ErrWrongMode = errors.New("action not available in current mode")
	// ErrNoSelection indicates no catalog entry is selected.
	ErrNoSelection = errors.New("no goods selected")
	// ErrUnknownGoods indicates the requested catalog entry does not exist.
	ErrUnknownGoods = errors.New("goods not in catalog")
	// ErrInvalidQuantity indicates the draft quantity is not a positive number.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrNotConfirmed indicates a delete was requested without confirmation.
	ErrNotConfirmed = errors.New("delete not confirmed")
)

// RefreshFunc is supplied by the parent and invoked after mutations that
// should make it re-synchronize.
type RefreshFunc func()

// State is the position of the form in its state machine.
type State int

const (
	StateCreate State = iota
	StateUpdateNoSelection
	StateUpdateSelected
	StateStockIn
	StateStockOut
)

// View is a consistent copy of everything needed to render the form.
type View struct {
	Mode        models.Mode
	State       State
	Catalog     []models.Goods
	Suggestions []models.Goods
	Query       string
	Draft       models.TransactionDraft
	Success     string
	Error       string
	Alert       string
	Busy        bool
}

// Form is the server-side state of one transaction form. All methods are safe
// for concurrent use; backend calls run without holding the lock.
type Form struct {
	mu sync.Mutex

	sessionID string
	client    inventory.Client
	journal   activity.Recorder
	refresh   RefreshFunc
	logger    *zap.Logger

	mode            models.Mode
	catalog         []models.Goods
	filtered        []models.Goods
	query           string
	hideSuggestions bool
	draft           models.TransactionDraft
	feedback        models.Feedback
	busy            bool
	closed          bool
}

// NewForm builds a form in Create mode with an empty catalog. Call Load to
// fetch the catalog.
func NewForm(sessionID string, client inventory.Client, journal activity.Recorder, refresh RefreshFunc, logger *zap.Logger) *Form {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Form{
		sessionID: sessionID,
		client:    client,
		journal:   journal,
		refresh:   refresh,
		logger:    logger,
		mode:      models.ModeCreate,
	}
}

// Load fetches the goods catalog. A failure is logged and leaves the current
// catalog in place so the form stays usable.
func (f *Form) Load(ctx context.Context) error {
	if f.isClosed() {
		return ErrClosed
	}

	catalog, err := f.client.ListGoods(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	if err != nil {
		f.logger.Error("failed to load goods catalog", zap.String("session_id", f.sessionID), zap.Error(err))
		return err
	}

	f.catalog = catalog
	if f.hideSuggestions {
		f.filtered = nil
	} else {
		f.filtered = FilterGoods(catalog, f.query)
	}
	f.logger.Debug("goods catalog loaded", zap.String("session_id", f.sessionID), zap.Int("count", len(catalog)))
	return nil
}

// Render returns a snapshot of the form and consumes the pending alert.
func (f *Form) Render() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	view := View{
		Mode:    f.mode,
		State:   f.stateLocked(),
		Catalog: f.catalog,
		Query:   f.query,
		Draft:   f.draft,
		Success: f.feedback.Success,
		Error:   f.feedback.Error,
		Alert:   f.feedback.PopAlert(),
		Busy:    f.busy,
	}
	if f.query != "" && len(f.filtered) > 0 {
		view.Suggestions = f.filtered
	}
	return view
}

// State reports the current state machine position.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() models.TransactionDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// UpdateDraft applies fn to the draft under the form lock.
func (f *Form) UpdateDraft(fn func(d *models.TransactionDraft)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	fn(&f.draft)
	return nil
}

// Close tears the form down. Results of calls still in flight are discarded.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *Form) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Form) stateLocked() State {
	switch f.mode {
	case models.ModeUpdate:
		if f.draft.HasSelection() {
			return StateUpdateSelected
		}
		return StateUpdateNoSelection
	case models.ModeStockIn:
		return StateStockIn
	case models.ModeStockOut:
		return StateStockOut
	default:
		return StateCreate
	}
}

// beginLocked reserves the form for a mutation allowed in the active mode.
func (f *Form) beginLocked(mode func(models.Mode) bool) error {
	if f.closed {
		return ErrClosed
	}
	if !mode(f.mode) {
		return ErrWrongMode
	}
	if f.busy {
		return ErrBusy
	}
	f.busy = true
	return nil
}

// finishLocked releases the form after a backend call. It reports false when
// the form was closed meanwhile and the result must be dropped.
func (f *Form) finishLocked() bool {
	f.busy = false
	return !f.closed
}

func (f *Form) record(ctx context.Context, record models.ActivityRecord) {
	if f.journal == nil {
		return
	}
	record.SessionID = f.sessionID
	f.journal.Record(ctx, record)
}

func (f *Form) notifyParent() {
	if f.refresh != nil {
		f.refresh()
	}
}

func isUpdate(m models.Mode) bool { return m == models.ModeUpdate }
