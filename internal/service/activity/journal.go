package activity

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// ErrHistoryUnavailable is returned when no sink can answer history queries.
var ErrHistoryUnavailable = errors.New("activity history unavailable")

const sinkTimeout = 5 * time.Second

// Sink persists journal entries.
type Sink interface {
	SaveActivity(ctx context.Context, record models.ActivityRecord) error
}

// HistorySource can list past entries for a goods item.
type HistorySource interface {
	RecentActivity(ctx context.Context, goodsID int64, limit int64) ([]models.ActivityRecord, error)
}

// Recorder is what the forms depend on.
type Recorder interface {
	Record(ctx context.Context, record models.ActivityRecord)
}

// Journal fans records out to every configured sink. Sink failures are
// logged and never reach the caller.
type Journal struct {
	sinks   map[string]Sink
	history HistorySource
	logger  *zap.Logger
	now     func() time.Time
}

// NewJournal builds a journal with no sinks; Record is then a no-op.
func NewJournal(logger *zap.Logger) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Journal{
		sinks:  make(map[string]Sink),
		logger: logger,
		now:    time.Now,
	}
}

// AddSink registers a named sink. A sink that also implements HistorySource
// becomes the history source if none is set yet.
func (j *Journal) AddSink(name string, sink Sink) {
	j.sinks[name] = sink
	if hs, ok := sink.(HistorySource); ok && j.history == nil {
		j.history = hs
	}
	j.logger.Info("activity sink enabled", zap.String("sink", name))
}

// Record stamps the entry and writes it to every sink.
func (j *Journal) Record(ctx context.Context, record models.ActivityRecord) {
	if record.At.IsZero() {
		record.At = j.now().UTC()
	}

	for name, sink := range j.sinks {
		sinkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sinkTimeout)
		err := sink.SaveActivity(sinkCtx, record)
		cancel()
		if err != nil {
			j.logger.Warn("failed to record activity",
				zap.String("sink", name),
				zap.String("kind", string(record.Kind)),
				zap.Int64("goods_id", record.GoodsID),
				zap.Error(err))
		}
	}
}

// History returns the latest entries for goodsID.
func (j *Journal) History(ctx context.Context, goodsID int64, limit int64) ([]models.ActivityRecord, error) {
	if j.history == nil {
		return nil, ErrHistoryUnavailable
	}
	if limit <= 0 {
		limit = 20
	}
	return j.history.RecentActivity(ctx, goodsID, limit)
}
