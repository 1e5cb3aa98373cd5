package usecase

import (
	"time"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
	"github.com/rocketscienceinc/gameroom-backend/internal/game"
)

type Room struct {
	ID          string
	Kind        entity.GameKind
	Players     [2]entity.Player
	State       game.State
	CurrentTurn int
	CreatedAt   time.Time
	Finished    bool
}

// SeatOf - returns the player index of connID in the room.
func (that *Room) SeatOf(connID string) (int, bool) {
	for seat, player := range that.Players {
		if player.ConnID == connID {
			return seat, true
		}
	}

	return 0, false
}

// OutcomeFor maps a terminal winner value to the result of one seat.
func OutcomeFor(seat, winner int) entity.Outcome {
	switch winner {
	case game.Draw:
		return entity.OutcomeDraw
	case seat:
		return entity.OutcomeWin
	default:
		return entity.OutcomeLoss
	}
}

type waitingEntry struct {
	player    entity.Player
	createdAt time.Time
}
