package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

// Draw is the winner value reported when nobody won.
const Draw = -1

const (
	ReasonWin   = "win"
	ReasonDraw  = "draw"
	ReasonFold  = "fold"
	ReasonBust  = "bust"
	ReasonStand = "stand"
)

var (
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidColumn     = errors.New("invalid column")
	ErrColumnFull        = errors.New("column is full")
	ErrNoFlips           = errors.New("invalid move: no discs to flip")
	ErrPassNotAllowed    = errors.New("cannot pass while a move is available")
	ErrUnknownActionType = errors.New("unknown action type")
	ErrInvalidAmount     = errors.New("bet amount must be positive")
	ErrBetTooLarge       = errors.New("bet amount is too large")
	ErrDeckEmpty         = errors.New("no cards left in the deck")
	ErrInvalidPlayer     = errors.New("invalid player index")
	ErrActionMismatch    = errors.New("action does not belong to this game")
	ErrMalformedAction   = errors.New("malformed action")
)

// State is the authoritative value of one room. Implementations are plain values,
// every transition returns a new one.
type State interface {
	Kind() entity.GameKind
}

// Result is everything a transition reports back to the room.
type Result struct {
	Valid    bool
	State    State
	Err      error
	GameOver bool
	Winner   int
	Reason   string
}

func rejected(err error) Result {
	return Result{Err: err}
}

func proceed(state State) Result {
	return Result{Valid: true, State: state}
}

func finished(state State, winner int, reason string) Result {
	return Result{
		Valid:    true,
		State:    state,
		GameOver: true,
		Winner:   winner,
		Reason:   reason,
	}
}

// Initialize - creates the starting state for a game kind.
func Initialize(kind entity.GameKind, rng *rand.Rand) (State, error) {
	switch kind {
	case entity.KindTicTacToe:
		return NewTicTacToe(), nil
	case entity.KindConnectFour:
		return NewConnectFour(), nil
	case entity.KindReversi:
		return NewReversi(), nil
	case entity.KindPoker:
		return NewPoker(rng), nil
	case entity.KindBlackjack:
		return NewBlackjack(rng), nil
	default:
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownGameKind, kind)
	}
}

// Apply - runs one action of player against state. The input state is never modified.
func Apply(state State, action Action, player int) Result {
	if player != 0 && player != 1 {
		return rejected(fmt.Errorf("%w: %d", ErrInvalidPlayer, player))
	}

	switch current := state.(type) {
	case TicTacToeState:
		move, ok := action.(CellAction)
		if !ok {
			return rejected(ErrActionMismatch)
		}

		return current.apply(move, player)
	case ConnectFourState:
		move, ok := action.(ColumnAction)
		if !ok {
			return rejected(ErrActionMismatch)
		}

		return current.apply(move, player)
	case ReversiState:
		move, ok := action.(ReversiAction)
		if !ok {
			return rejected(ErrActionMismatch)
		}

		return current.apply(move, player)
	case PokerState:
		move, ok := action.(PokerAction)
		if !ok {
			return rejected(ErrActionMismatch)
		}

		return current.apply(move, player)
	case BlackjackState:
		move, ok := action.(BlackjackAction)
		if !ok {
			return rejected(ErrActionMismatch)
		}

		return current.apply(move, player)
	default:
		return rejected(fmt.Errorf("%w: unsupported state %T", ErrActionMismatch, state))
	}
}
