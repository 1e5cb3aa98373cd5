package stats

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

type mockRepository struct {
	mock.Mock
}

func (that *mockRepository) RecordOutcome(ctx context.Context, identityID string, record entity.GameRecord) error {
	args := that.Called(ctx, identityID, record)
	return args.Error(0)
}

type countingObserver struct {
	mu     sync.Mutex
	ok     int
	failed int
}

func (that *countingObserver) StatsWritten(err error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err != nil {
		that.failed++
		return
	}
	that.ok++
}

func (that *countingObserver) counts() (int, int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.ok, that.failed
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAsyncRecorder(t *testing.T) {
	t.Run("Queued outcomes reach the repository", func(t *testing.T) {
		// Given: a recorder over a repository that accepts writes
		clock := quartz.NewMock(t)
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		clock.Set(now)

		repo := &mockRepository{}
		repo.On("RecordOutcome", mock.Anything, "alice", entity.GameRecord{
			GameKind:  entity.KindConnectFour,
			Result:    entity.OutcomeWin,
			Timestamp: now,
		}).Return(nil).Once()

		observer := &countingObserver{}
		recorder := NewAsyncRecorder(discardLogger(), repo, observer, clock, 4, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- recorder.Run(ctx) }()

		// When: an outcome is recorded
		err := recorder.Record(ctx, entity.Identity{ID: "alice"}, entity.OutcomeWin, entity.KindConnectFour)
		require.NoError(t, err)

		// Then: the worker writes it
		require.Eventually(t, func() bool {
			ok, _ := observer.counts()
			return ok == 1
		}, time.Second, 10*time.Millisecond)

		cancel()
		require.NoError(t, <-done)
		repo.AssertExpectations(t)
	})

	t.Run("Repository failure is swallowed", func(t *testing.T) {
		// Given: a repository that always fails
		repo := &mockRepository{}
		repo.On("RecordOutcome", mock.Anything, "bob", mock.Anything).Return(errors.New("storage down")).Once()

		observer := &countingObserver{}
		recorder := NewAsyncRecorder(discardLogger(), repo, observer, quartz.NewReal(), 4, time.Second)

		// When: the outcome is recorded and the worker is stopped right away
		require.NoError(t, recorder.Record(context.Background(), entity.Identity{ID: "bob"}, entity.OutcomeLoss, entity.KindPoker))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// Then: the pending write is flushed and counted as failed
		require.NoError(t, recorder.Run(ctx))
		_, failed := observer.counts()
		assert.Equal(t, 1, failed)
	})

	t.Run("Full queue rejects without blocking", func(t *testing.T) {
		// Given: a recorder with room for one entry and no worker
		recorder := NewAsyncRecorder(discardLogger(), &mockRepository{}, &countingObserver{}, quartz.NewReal(), 1, time.Second)
		identity := entity.Identity{ID: "carol"}

		// When: two outcomes are recorded
		first := recorder.Record(context.Background(), identity, entity.OutcomeDraw, entity.KindTicTacToe)
		second := recorder.Record(context.Background(), identity, entity.OutcomeDraw, entity.KindTicTacToe)

		// Then: the second one is dropped
		require.NoError(t, first)
		require.ErrorIs(t, second, ErrQueueFull)
	})
}
