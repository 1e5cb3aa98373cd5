package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/coder/quartz"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
	"github.com/rocketscienceinc/gameroom-backend/internal/usecase"
)

// Inbound actions.
const (
	ActionFindMatch  = "find-match"
	ActionGameAction = "game-action"
)

const eventBuffer = 256

type rooms interface {
	RequestMatch(ctx context.Context, kind entity.GameKind, identity entity.Identity, connID string) error
	ApplyAction(ctx context.Context, roomID, connID string, rawAction json.RawMessage) error
	RemovePlayer(ctx context.Context, connID string)
}

type sender interface {
	Send(connID, event string, payload any)
}

type verifier interface {
	Verify(ctx context.Context, token, username string) (entity.Identity, error)
}

type FindMatchPayload struct {
	GameType string `json:"gameType"`
	Username string `json:"username,omitempty"`
	Token    string `json:"token,omitempty"`
}

type GameActionPayload struct {
	RoomID string          `json:"roomId"`
	Action json.RawMessage `json:"action"`
}

type event struct {
	connID     string
	message    Message
	disconnect bool
	receivedAt time.Time
}

// Coordinator serializes every inbound event on a single loop.
type Coordinator struct {
	logger      *slog.Logger
	rooms       rooms
	sender      sender
	verifier    verifier
	clock       quartz.Clock
	actionDelay time.Duration

	events chan event
	done   chan struct{}
}

func NewCoordinator(
	logger *slog.Logger,
	rooms rooms,
	sender sender,
	verifier verifier,
	clock quartz.Clock,
	actionDelay time.Duration,
) *Coordinator {
	return &Coordinator{
		logger:      logger.With("component", "coordinator"),
		rooms:       rooms,
		sender:      sender,
		verifier:    verifier,
		clock:       clock,
		actionDelay: actionDelay,

		events: make(chan event, eventBuffer),
		done:   make(chan struct{}),
	}
}

// Dispatch - queues a client message for the loop.
func (that *Coordinator) Dispatch(connID string, message Message) {
	that.enqueue(event{connID: connID, message: message, receivedAt: that.clock.Now()})
}

// Disconnect - queues the teardown of connID behind its earlier messages.
func (that *Coordinator) Disconnect(connID string) {
	that.enqueue(event{connID: connID, disconnect: true, receivedAt: that.clock.Now()})
}

func (that *Coordinator) enqueue(ev event) {
	select {
	case that.events <- ev:
	case <-that.done:
	}
}

// Run - processes events in arrival order until ctx is canceled.
func (that *Coordinator) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")
	defer close(that.done)

	log.Info("coordinator started")

	for {
		select {
		case <-ctx.Done():
			log.Info("coordinator stopped")
			return nil
		case ev := <-that.events:
			that.handle(ctx, ev)
		}
	}
}

func (that *Coordinator) handle(ctx context.Context, ev event) {
	if ev.disconnect {
		that.rooms.RemovePlayer(ctx, ev.connID)
		return
	}

	switch ev.message.Action {
	case ActionFindMatch:
		that.handleFindMatch(ctx, ev)
	case ActionGameAction:
		if !that.waitActionDelay(ctx, ev.receivedAt) {
			return
		}

		that.handleGameAction(ctx, ev)
	default:
		that.sendError(ev.connID, fmt.Errorf("%w: unknown action %q", apperror.ErrInvalidMessage, ev.message.Action))
	}
}

// waitActionDelay holds an action until actionDelay has passed since it arrived.
// It reports false when ctx ended first.
func (that *Coordinator) waitActionDelay(ctx context.Context, receivedAt time.Time) bool {
	wait := that.actionDelay - that.clock.Since(receivedAt)
	if wait <= 0 {
		return true
	}

	timer := that.clock.NewTimer(wait, "coordinator", "actionDelay")
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (that *Coordinator) handleFindMatch(ctx context.Context, ev event) {
	log := that.logger.With("method", "handleFindMatch", "connID", ev.connID)

	var payload FindMatchPayload
	if err := json.Unmarshal(ev.message.Payload, &payload); err != nil {
		that.sendError(ev.connID, fmt.Errorf("%w: %w", apperror.ErrInvalidMessage, err))
		return
	}

	kind, err := entity.ParseGameKind(payload.GameType)
	if err != nil {
		that.sendError(ev.connID, err)
		return
	}

	identity, err := that.verifier.Verify(ctx, payload.Token, payload.Username)
	if err != nil {
		log.Warn("identity rejected", "error", err)
		that.sendError(ev.connID, err)
		return
	}

	if err = that.rooms.RequestMatch(ctx, kind, identity, ev.connID); err != nil {
		log.Info("match request rejected", "error", err)
		that.sendError(ev.connID, err)
	}
}

func (that *Coordinator) handleGameAction(ctx context.Context, ev event) {
	log := that.logger.With("method", "handleGameAction", "connID", ev.connID)

	var payload GameActionPayload
	if err := json.Unmarshal(ev.message.Payload, &payload); err != nil {
		that.sendError(ev.connID, fmt.Errorf("%w: %w", apperror.ErrInvalidMessage, err))
		return
	}

	if err := that.rooms.ApplyAction(ctx, payload.RoomID, ev.connID, payload.Action); err != nil {
		log.Debug("action rejected", "roomID", payload.RoomID, "error", err)
		that.sendError(ev.connID, err)
	}
}

func (that *Coordinator) sendError(connID string, err error) {
	that.sender.Send(connID, usecase.EventError, usecase.ErrorPayload{Message: err.Error()})
}
