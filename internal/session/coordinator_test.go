package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
	"github.com/rocketscienceinc/gameroom-backend/internal/usecase"
)

var errIntruder = errors.New("intruder")

type call struct {
	name   string
	connID string
	at     time.Time
}

type fakeRooms struct {
	mu    sync.Mutex
	calls []call
	err   error
}

func (that *fakeRooms) record(name, connID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.calls = append(that.calls, call{name: name, connID: connID, at: time.Now()})
}

func (that *fakeRooms) snapshot() []call {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]call(nil), that.calls...)
}

func (that *fakeRooms) RequestMatch(_ context.Context, kind entity.GameKind, identity entity.Identity, connID string) error {
	that.record(fmt.Sprintf("match:%s:%s", kind, identity.Name), connID)
	return nil
}

func (that *fakeRooms) ApplyAction(_ context.Context, roomID, connID string, _ json.RawMessage) error {
	that.record("action:"+roomID, connID)

	that.mu.Lock()
	defer that.mu.Unlock()

	return that.err
}

func (that *fakeRooms) RemovePlayer(_ context.Context, connID string) {
	that.record("remove", connID)
}

type fakeSender struct {
	mu     sync.Mutex
	errors map[string][]string
}

func (that *fakeSender) Send(connID, event string, payload any) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if event != usecase.EventError {
		return
	}

	if that.errors == nil {
		that.errors = make(map[string][]string)
	}

	that.errors[connID] = append(that.errors[connID], payload.(usecase.ErrorPayload).Message)
}

func (that *fakeSender) errorsFor(connID string) []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]string(nil), that.errors[connID]...)
}

type nameVerifier struct{}

func (nameVerifier) Verify(_ context.Context, _, username string) (entity.Identity, error) {
	if username == "intruder" {
		return entity.Identity{}, errIntruder
	}

	return entity.Identity{ID: "id-" + username, Name: username}, nil
}

func startCoordinator(t *testing.T, delay time.Duration) (*Coordinator, *fakeRooms, *fakeSender) {
	t.Helper()

	rooms := &fakeRooms{}
	sender := &fakeSender{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	coordinator := NewCoordinator(logger, rooms, sender, nameVerifier{}, quartz.NewReal(), delay)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- coordinator.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	return coordinator, rooms, sender
}

func message(t *testing.T, action string, payload any) Message {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	return Message{Action: action, Payload: data}
}

func TestCoordinator(t *testing.T) {
	t.Run("Events are handled in arrival order", func(t *testing.T) {
		// Given: a running coordinator
		coordinator, rooms, _ := startCoordinator(t, 10*time.Millisecond)

		// When: two match requests, an action and a disconnect arrive back to back
		coordinator.Dispatch("a", message(t, ActionFindMatch, FindMatchPayload{GameType: "connect4", Username: "alice"}))
		coordinator.Dispatch("b", message(t, ActionFindMatch, FindMatchPayload{GameType: "connect4", Username: "bob"}))
		coordinator.Dispatch("a", message(t, ActionGameAction, map[string]any{"roomId": "r1", "action": map[string]int{"column": 3}}))
		coordinator.Disconnect("b")

		// Then: the room service sees them in the same order
		require.Eventually(t, func() bool { return len(rooms.snapshot()) == 4 }, time.Second, 5*time.Millisecond)

		calls := rooms.snapshot()
		assert.Equal(t, call{name: "match:connect4:alice", connID: "a"}, call{name: calls[0].name, connID: calls[0].connID})
		assert.Equal(t, "match:connect4:bob", calls[1].name)
		assert.Equal(t, "action:r1", calls[2].name)
		assert.Equal(t, "remove", calls[3].name)
		assert.Equal(t, "b", calls[3].connID)
	})

	t.Run("Actions wait for the processing delay", func(t *testing.T) {
		// Given: a coordinator with a 50ms action delay
		delay := 50 * time.Millisecond
		coordinator, rooms, _ := startCoordinator(t, delay)

		// When: an action arrives
		sentAt := time.Now()
		coordinator.Dispatch("a", message(t, ActionGameAction, GameActionPayload{RoomID: "r1", Action: json.RawMessage(`{"position":1}`)}))

		// Then: it is applied no earlier than the delay
		require.Eventually(t, func() bool { return len(rooms.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
		assert.GreaterOrEqual(t, rooms.snapshot()[0].at.Sub(sentAt), delay)
	})

	t.Run("Rejections go back to the sender as errors", func(t *testing.T) {
		// Given: a room service that refuses actions
		coordinator, rooms, sender := startCoordinator(t, 0)
		rooms.mu.Lock()
		rooms.err = apperror.ErrNotYourTurn
		rooms.mu.Unlock()

		// When: an action is sent
		coordinator.Dispatch("b", message(t, ActionGameAction, GameActionPayload{RoomID: "r1", Action: json.RawMessage(`{}`)}))

		// Then: only the sender hears about it
		require.Eventually(t, func() bool { return len(sender.errorsFor("b")) == 1 }, time.Second, 5*time.Millisecond)
		assert.Equal(t, apperror.ErrNotYourTurn.Error(), sender.errorsFor("b")[0])
		assert.Empty(t, sender.errorsFor("a"))
	})

	t.Run("Bad requests are answered without reaching the rooms", func(t *testing.T) {
		coordinator, rooms, sender := startCoordinator(t, 0)

		coordinator.Dispatch("a", message(t, ActionFindMatch, FindMatchPayload{GameType: "chess", Username: "alice"}))
		coordinator.Dispatch("a", message(t, ActionFindMatch, FindMatchPayload{GameType: "poker", Username: "intruder"}))
		coordinator.Dispatch("a", Message{Action: "dance"})
		coordinator.Dispatch("a", Message{Action: ActionGameAction, Payload: json.RawMessage(`[]`)})

		require.Eventually(t, func() bool { return len(sender.errorsFor("a")) == 4 }, time.Second, 5*time.Millisecond)
		assert.Empty(t, rooms.snapshot())
	})
}
