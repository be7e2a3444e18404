package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/service/activity"
	"github.com/mamadbah2/stockdesk/internal/service/registration"
	"github.com/mamadbah2/stockdesk/internal/service/transaction"
	"github.com/mamadbah2/stockdesk/pkg/clients/inventory"
)

// Session is one browser's page: the transaction form, its registration
// child and the bookkeeping behind the refresh callback.
type Session struct {
	ID           string
	Transaction  *transaction.Form
	Registration *registration.Form

	stale    atomic.Bool
	lastSeen atomic.Int64
}

// Refresh is the callback handed to both forms. It only marks the catalog
// stale; Sync does the reload on the next request.
func (s *Session) Refresh() {
	s.stale.Store(true)
}

// Sync reloads the catalog if a refresh was requested since the last sync.
// A failed reload keeps the refresh pending for the next sync.
func (s *Session) Sync(ctx context.Context) error {
	if !s.stale.CompareAndSwap(true, false) {
		return nil
	}
	if err := s.Transaction.Load(ctx); err != nil {
		s.stale.Store(true)
		return err
	}
	return nil
}

// LastSeen returns when the session was last used.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// Manager handles per-browser form sessions.
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex

	client  inventory.Client
	journal activity.Recorder
	logger  *zap.Logger
	now     func() time.Time
}

// NewManager creates a new session manager.
func NewManager(client inventory.Client, journal activity.Recorder, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		client:   client,
		journal:  journal,
		logger:   logger,
		now:      time.Now,
	}
}

// Get retrieves a live session and marks it as used.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.touch(m.now())
	}
	return s, ok
}

// Create mounts a new session: both forms are built and the catalog is
// loaded once. A load failure leaves the session usable with an empty catalog.
func (m *Manager) Create(ctx context.Context) *Session {
	s := &Session{ID: uuid.NewString()}
	formLogger := m.logger.With(zap.String("session_id", s.ID))
	s.Transaction = transaction.NewForm(s.ID, m.client, m.journal, s.Refresh, formLogger.Named("transaction"))
	s.Registration = registration.NewForm(s.ID, m.client, m.journal, s.Refresh, formLogger.Named("registration"))
	s.touch(m.now())

	if err := s.Transaction.Load(ctx); err != nil {
		m.logger.Warn("session started with empty catalog", zap.String("session_id", s.ID), zap.Error(err))
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Debug("session created", zap.String("session_id", s.ID))
	return s
}

// GetOrCreate returns the session for id, creating one when it is unknown.
func (m *Manager) GetOrCreate(ctx context.Context, id string) *Session {
	if id != "" {
		if s, ok := m.Get(id); ok {
			return s
		}
	}
	return m.Create(ctx)
}

// Remove tears a session down.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Transaction.Close()
	}
}

// Sweep tears down every session idle for longer than idle and returns how
// many were removed.
func (m *Manager) Sweep(idle time.Duration) int {
	cutoff := m.now().Add(-idle)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Transaction.Close()
	}
	return len(expired)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
