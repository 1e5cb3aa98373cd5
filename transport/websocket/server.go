package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gameroom-backend/internal/session"
)

const shutdownTimeout = 5 * time.Second

type registry interface {
	Register(conn session.Connection)
	Unregister(connID string)
}

type dispatcher interface {
	Dispatch(connID string, message session.Message)
	Disconnect(connID string)
}

type Server struct {
	logger     *slog.Logger
	upgrader   websocket.Upgrader
	registry   registry
	dispatcher dispatcher
}

func New(logger *slog.Logger, registry registry, dispatcher dispatcher) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		registry:   registry,
		dispatcher: dispatcher,
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.handleWebSocket)

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// handleWebSocket - upgrades the connection and serves it until the peer goes away.
func (that *Server) handleWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "handleWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := newClient(uuid.NewString(), conn, that.logger)
	log = log.With("connID", client.ID())

	that.registry.Register(client)
	log.Info("WebSocket connection established")

	go client.writePump()

	client.readPump(func(message session.Message) {
		that.dispatcher.Dispatch(client.ID(), message)
	})

	that.registry.Unregister(client.ID())
	that.dispatcher.Disconnect(client.ID())
	client.close()

	log.Info("WebSocket connection closed")
}
