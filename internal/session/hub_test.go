package session

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConnection struct {
	id   string
	full bool

	mu       sync.Mutex
	messages []Message
}

func (that *fakeConnection) ID() string {
	return that.id
}

func (that *fakeConnection) Enqueue(message Message) bool {
	if that.full {
		return false
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.messages = append(that.messages, message)

	return true
}

type countingObserver struct {
	open int
}

func (that *countingObserver) ConnectionOpened() { that.open++ }
func (that *countingObserver) ConnectionClosed() { that.open-- }

func TestHub(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Send encodes the payload for the target connection only", func(t *testing.T) {
		// Given: two registered connections
		observer := &countingObserver{}
		hub := NewHub(logger, observer)
		first := &fakeConnection{id: "a"}
		second := &fakeConnection{id: "b"}
		hub.Register(first)
		hub.Register(second)

		// When: sending to the first one
		hub.Send("a", "game-over", map[string]any{"winner": 1, "reason": "fold"})

		// Then: only it receives the envelope
		require.Len(t, first.messages, 1)
		assert.Equal(t, "game-over", first.messages[0].Action)
		assert.JSONEq(t, `{"winner":1,"reason":"fold"}`, string(first.messages[0].Payload))
		assert.Empty(t, second.messages)
		assert.Equal(t, 2, observer.open)
	})

	t.Run("Unregistered or saturated connections are skipped", func(t *testing.T) {
		observer := &countingObserver{}
		hub := NewHub(logger, observer)
		slow := &fakeConnection{id: "slow", full: true}
		hub.Register(slow)
		hub.Register(&fakeConnection{id: "gone"})
		hub.Unregister("gone")
		hub.Unregister("gone")

		hub.Send("gone", "error", map[string]string{"message": "x"})
		hub.Send("slow", "error", map[string]string{"message": "x"})

		assert.Empty(t, slow.messages)
		assert.Equal(t, 1, hub.Len())
		assert.Equal(t, 1, observer.open)
	})
}
