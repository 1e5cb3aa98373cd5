package session

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Message is the envelope exchanged with clients in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Connection is the transport side of one client.
type Connection interface {
	ID() string
	// Enqueue must not block; it reports false when the message was dropped.
	Enqueue(message Message) bool
}

type connectionObserver interface {
	ConnectionOpened()
	ConnectionClosed()
}

// Hub is the registry of live connections and the outbound side of the server.
type Hub struct {
	logger   *slog.Logger
	observer connectionObserver

	mu          sync.RWMutex
	connections map[string]Connection
}

func NewHub(logger *slog.Logger, observer connectionObserver) *Hub {
	return &Hub{
		logger:   logger.With("component", "hub"),
		observer: observer,

		connections: make(map[string]Connection),
	}
}

func (that *Hub) Register(conn Connection) {
	that.mu.Lock()
	that.connections[conn.ID()] = conn
	that.mu.Unlock()

	that.observer.ConnectionOpened()
}

func (that *Hub) Unregister(connID string) {
	that.mu.Lock()
	_, ok := that.connections[connID]
	delete(that.connections, connID)
	that.mu.Unlock()

	if ok {
		that.observer.ConnectionClosed()
	}
}

func (that *Hub) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.connections)
}

// Send - delivers one event to connID. Failures are logged and dropped.
func (that *Hub) Send(connID, event string, payload any) {
	log := that.logger.With("method", "Send", "connID", connID, "event", event)

	data, err := json.Marshal(payload)
	if err != nil {
		log.Error("failed to marshal payload", "error", err)
		return
	}

	that.mu.RLock()
	conn, ok := that.connections[connID]
	that.mu.RUnlock()

	if !ok {
		log.Warn("connection not found")
		return
	}

	if !conn.Enqueue(Message{Action: event, Payload: data}) {
		log.Warn("outbound buffer full, message dropped")
	}
}
