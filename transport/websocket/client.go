package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gameroom-backend/internal/session"
	"github.com/rocketscienceinc/gameroom-backend/internal/usecase"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 8192

	sendBuffer = 64
)

// Client is one upgraded browser connection.
type Client struct {
	id     string
	conn   *websocket.Conn
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
	send   chan session.Message
}

func newClient(id string, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		id:     id,
		conn:   conn,
		logger: logger.With("connID", id),

		send: make(chan session.Message, sendBuffer),
	}
}

func (that *Client) ID() string {
	return that.id
}

// Enqueue - queues a message for the write pump without blocking.
func (that *Client) Enqueue(message session.Message) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return false
	}

	select {
	case that.send <- message:
		return true
	default:
		return false
	}
}

func (that *Client) close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.closed {
		that.closed = true
		close(that.send)
	}
}

// readPump - reads envelopes until the connection fails.
func (that *Client) readPump(onMessage func(session.Message)) {
	log := that.logger.With("method", "readPump")

	that.conn.SetReadLimit(maxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("unexpected close", "error", err)
			}
			return
		}

		var message session.Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			that.enqueueError("invalid message")
			continue
		}

		onMessage(message)
	}
}

// writePump - writes queued messages and keeps the connection alive with pings.
func (that *Client) writePump() {
	log := that.logger.With("method", "writePump")

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case message, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteJSON(message); err != nil {
				log.Error("failed to write message", "error", err)
				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (that *Client) enqueueError(text string) {
	payload, err := json.Marshal(usecase.ErrorPayload{Message: text})
	if err != nil {
		return
	}

	that.Enqueue(session.Message{Action: usecase.EventError, Payload: payload})
}
