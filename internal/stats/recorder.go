package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coder/quartz"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

var ErrQueueFull = errors.New("stats queue is full")

type repository interface {
	RecordOutcome(ctx context.Context, identityID string, record entity.GameRecord) error
}

type writeObserver interface {
	StatsWritten(err error)
}

type job struct {
	identity entity.Identity
	record   entity.GameRecord
}

// AsyncRecorder hands outcomes to a single background writer so room handling never waits on storage.
type AsyncRecorder struct {
	logger   *slog.Logger
	repo     repository
	observer writeObserver
	clock    quartz.Clock
	timeout  time.Duration

	queue chan job
}

func NewAsyncRecorder(
	logger *slog.Logger,
	repo repository,
	observer writeObserver,
	clock quartz.Clock,
	queueSize int,
	timeout time.Duration,
) *AsyncRecorder {
	return &AsyncRecorder{
		logger:   logger.With("component", "stats"),
		repo:     repo,
		observer: observer,
		clock:    clock,
		timeout:  timeout,

		queue: make(chan job, queueSize),
	}
}

// Record - enqueues one outcome. It never blocks.
func (that *AsyncRecorder) Record(_ context.Context, identity entity.Identity, outcome entity.Outcome, kind entity.GameKind) error {
	entry := job{
		identity: identity,
		record: entity.GameRecord{
			GameKind:  kind,
			Result:    outcome,
			Timestamp: that.clock.Now().UTC(),
		},
	}

	select {
	case that.queue <- entry:
		return nil
	default:
		return fmt.Errorf("%w: dropping %s for %s", ErrQueueFull, outcome, identity.ID)
	}
}

// Run - writes queued outcomes until ctx is canceled, then flushes what is left.
func (that *AsyncRecorder) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	for {
		select {
		case entry := <-that.queue:
			that.write(entry)
		case <-ctx.Done():
			for {
				select {
				case entry := <-that.queue:
					that.write(entry)
				default:
					log.Info("stats recorder stopped")
					return nil
				}
			}
		}
	}
}

func (that *AsyncRecorder) write(entry job) {
	log := that.logger.With("method", "write", "identity", entry.identity.ID)

	ctx, cancel := context.WithTimeout(context.Background(), that.timeout)
	defer cancel()

	err := that.repo.RecordOutcome(ctx, entry.identity.ID, entry.record)
	that.observer.StatsWritten(err)

	if err != nil {
		log.Error("failed to record outcome", "error", err)
		return
	}

	log.Debug("outcome recorded", "result", entry.record.Result, "gameType", entry.record.GameKind)
}

// Discard is a recorder for deployments without a statistics store.
type Discard struct{}

func (Discard) Record(context.Context, entity.Identity, entity.Outcome, entity.GameKind) error {
	return nil
}
