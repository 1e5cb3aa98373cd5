package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	rand "math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
	"github.com/rocketscienceinc/gameroom-backend/internal/game"
	"github.com/rocketscienceinc/gameroom-backend/internal/metrics"
)

type notifier interface {
	Send(connID, event string, payload any)
}

type outcomeRecorder interface {
	Record(ctx context.Context, identity entity.Identity, outcome entity.Outcome, kind entity.GameKind) error
}

// GameManager owns the waiting set and every live room.
type GameManager struct {
	logger       *slog.Logger
	notifier     notifier
	recorder     outcomeRecorder
	metrics      *metrics.Metrics
	clock        quartz.Clock
	rng          *rand.Rand
	removalDelay time.Duration

	mu      sync.Mutex
	waiting map[entity.GameKind]waitingEntry
	rooms   map[string]*Room
	seats   map[string]string
}

func NewGameManager(
	logger *slog.Logger,
	notifier notifier,
	recorder outcomeRecorder,
	gameMetrics *metrics.Metrics,
	clock quartz.Clock,
	rng *rand.Rand,
	removalDelay time.Duration,
) *GameManager {
	return &GameManager{
		logger:       logger.With("component", "game_manager"),
		notifier:     notifier,
		recorder:     recorder,
		metrics:      gameMetrics,
		clock:        clock,
		rng:          rng,
		removalDelay: removalDelay,

		waiting: make(map[entity.GameKind]waitingEntry),
		rooms:   make(map[string]*Room),
		seats:   make(map[string]string),
	}
}

// RequestMatch - pairs the requester with the player waiting for the same kind, or makes it wait.
func (that *GameManager) RequestMatch(ctx context.Context, kind entity.GameKind, identity entity.Identity, connID string) error {
	log := that.logger.With("method", "RequestMatch", "connID", connID, "gameType", kind)

	if !slices.Contains(entity.Kinds, kind) {
		return fmt.Errorf("%w: %q", entity.ErrUnknownGameKind, kind)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if roomID, seated := that.seats[connID]; seated {
		if room := that.rooms[roomID]; room != nil && !room.Finished {
			return fmt.Errorf("%w: %s", apperror.ErrAlreadyInRoom, roomID)
		}

		delete(that.seats, connID)
	}

	that.dropWaiting(connID)

	player := entity.Player{ConnID: connID, Identity: identity}

	opponent, ok := that.waiting[kind]
	if !ok {
		that.waiting[kind] = waitingEntry{player: player, createdAt: that.clock.Now()}
		that.metrics.SetWaiting(len(that.waiting))
		that.notifier.Send(connID, EventWaitingForMatch, EmptyPayload{})

		log.Info("player is waiting for an opponent")

		return nil
	}

	state, err := game.Initialize(kind, that.rng)
	if err != nil {
		return fmt.Errorf("failed to initialize game: %w", err)
	}

	delete(that.waiting, kind)

	room := &Room{
		ID:        uuid.NewString(),
		Kind:      kind,
		Players:   [2]entity.Player{opponent.player, player},
		State:     state,
		CreatedAt: that.clock.Now(),
	}

	that.rooms[room.ID] = room
	for _, seated := range room.Players {
		that.seats[seated.ConnID] = room.ID
	}

	that.metrics.MatchMade(kind)
	that.metrics.SetWaiting(len(that.waiting))
	that.metrics.SetRooms(len(that.rooms))

	for seat, seated := range room.Players {
		that.notifier.Send(seated.ConnID, EventMatchFound, MatchFoundPayload{
			RoomID:      room.ID,
			GameType:    kind,
			PlayerIndex: seat,
			Opponent:    room.Players[1-seat].Identity.Name,
			GameState:   room.State,
		})
	}

	log.Info("room created", "roomID", room.ID, "waitedFor", that.clock.Since(opponent.createdAt))

	return nil
}

// ApplyAction - validates and applies one action of connID in roomID, then fans the result out.
func (that *GameManager) ApplyAction(ctx context.Context, roomID, connID string, rawAction json.RawMessage) error {
	log := that.logger.With("method", "ApplyAction", "connID", connID, "roomID", roomID)

	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	seat, ok := room.SeatOf(connID)
	if !ok {
		return apperror.ErrNotInRoom
	}

	if room.Finished {
		return apperror.ErrGameFinished
	}

	if seat != room.CurrentTurn {
		that.metrics.ActionRejected(room.Kind)
		return apperror.ErrNotYourTurn
	}

	action, err := game.DecodeAction(room.Kind, rawAction)
	if err != nil {
		that.metrics.ActionRejected(room.Kind)
		return fmt.Errorf("%w: %w", apperror.ErrInvalidAction, err)
	}

	result := game.Apply(room.State, action, seat)
	if !result.Valid {
		that.metrics.ActionRejected(room.Kind)
		return result.Err
	}

	that.metrics.ActionAccepted(room.Kind)

	room.State = result.State
	room.CurrentTurn = (room.CurrentTurn + 1) % 2

	that.broadcast(room, EventGameUpdate, GameUpdatePayload{
		GameState:   room.State,
		CurrentTurn: room.CurrentTurn,
		LastAction:  action,
	})

	if !result.GameOver {
		return nil
	}

	room.Finished = true
	that.metrics.GameFinished(room.Kind, result.Reason)

	that.broadcast(room, EventGameOver, GameOverPayload{
		Winner: result.Winner,
		Reason: result.Reason,
	})

	that.recordOutcomes(ctx, room, result.Winner)
	that.scheduleRemoval(room)

	log.Info("game finished", "winner", result.Winner, "reason", result.Reason)

	return nil
}

// RemovePlayer - forgets a closed connection and tears down its room.
func (that *GameManager) RemovePlayer(_ context.Context, connID string) {
	log := that.logger.With("method", "RemovePlayer", "connID", connID)

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.dropWaiting(connID) {
		that.metrics.SetWaiting(len(that.waiting))
		log.Info("waiting entry removed")
	}

	roomID, ok := that.seats[connID]
	if !ok {
		return
	}

	room, ok := that.rooms[roomID]
	if !ok {
		delete(that.seats, connID)
		return
	}

	seat, _ := room.SeatOf(connID)

	// the opponent may already sit in a newer room after this one finished
	opponent := room.Players[1-seat].ConnID
	if that.seats[opponent] == room.ID {
		that.notifier.Send(opponent, EventOpponentDisconnected, EmptyPayload{})
	}

	that.deleteRoom(room)
	that.metrics.RoomAbandoned()

	log.Info("room closed after disconnect", "roomID", roomID)
}

// Room - returns a snapshot of a live room.
func (that *GameManager) Room(roomID string) (Room, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return Room{}, false
	}

	return *room, true
}

// RoomOf - returns the id of the room connID is seated in.
func (that *GameManager) RoomOf(connID string) (string, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	roomID, ok := that.seats[connID]

	return roomID, ok
}

func (that *GameManager) RoomCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.rooms)
}

func (that *GameManager) WaitingCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.waiting)
}

func (that *GameManager) broadcast(room *Room, event string, payload any) {
	for _, player := range room.Players {
		that.notifier.Send(player.ConnID, event, payload)
	}
}

func (that *GameManager) recordOutcomes(ctx context.Context, room *Room, winner int) {
	log := that.logger.With("method", "recordOutcomes", "roomID", room.ID)

	for seat, player := range room.Players {
		outcome := OutcomeFor(seat, winner)
		if err := that.recorder.Record(ctx, player.Identity, outcome, room.Kind); err != nil {
			log.Error("failed to record outcome", "identity", player.Identity.ID, "error", err)
		}
	}
}

func (that *GameManager) scheduleRemoval(room *Room) {
	that.clock.AfterFunc(that.removalDelay, func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		if that.rooms[room.ID] != room {
			return
		}

		that.deleteRoom(room)
		that.logger.Info("finished room removed", "roomID", room.ID)
	})
}

// deleteRoom must be called with mu held.
func (that *GameManager) deleteRoom(room *Room) {
	delete(that.rooms, room.ID)

	for _, player := range room.Players {
		if that.seats[player.ConnID] == room.ID {
			delete(that.seats, player.ConnID)
		}
	}

	that.metrics.SetRooms(len(that.rooms))
}

// dropWaiting must be called with mu held.
func (that *GameManager) dropWaiting(connID string) bool {
	dropped := false

	for kind, entry := range that.waiting {
		if entry.player.ConnID == connID {
			delete(that.waiting, kind)
			dropped = true
		}
	}

	return dropped
}
