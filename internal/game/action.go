package game

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

// Action is one decoded player move. The concrete type is fixed by the game kind.
type Action interface {
	isAction()
}

// CellAction places a mark on a tic-tac-toe square.
type CellAction struct {
	Position int `json:"position"`
}

// ColumnAction drops a disc into a connect-four column.
type ColumnAction struct {
	Column int `json:"column"`
}

// ReversiAction places a disc, or passes when no placement flips anything.
type ReversiAction struct {
	Position int  `json:"position"`
	Pass     bool `json:"pass,omitempty"`
}

const (
	PokerBet  = "bet"
	PokerCall = "call"
	PokerFold = "fold"

	BlackjackHit   = "hit"
	BlackjackStand = "stand"
)

type PokerAction struct {
	Type   string `json:"type"`
	Amount int    `json:"amount,omitempty"`
}

type BlackjackAction struct {
	Type string `json:"type"`
}

func (CellAction) isAction()      {}
func (ColumnAction) isAction()    {}
func (ReversiAction) isAction()   {}
func (PokerAction) isAction()     {}
func (BlackjackAction) isAction() {}

// DecodeAction - parses a raw client action for the given game kind.
func DecodeAction(kind entity.GameKind, raw json.RawMessage) (Action, error) {
	switch kind {
	case entity.KindTicTacToe:
		var wire struct {
			Position *int `json:"position"`
		}
		if err := decode(raw, &wire); err != nil {
			return nil, err
		}

		if wire.Position == nil {
			return nil, fmt.Errorf("%w: position is required", ErrMalformedAction)
		}

		return CellAction{Position: *wire.Position}, nil
	case entity.KindConnectFour:
		var wire struct {
			Column *int `json:"column"`
		}
		if err := decode(raw, &wire); err != nil {
			return nil, err
		}

		if wire.Column == nil {
			return nil, fmt.Errorf("%w: column is required", ErrMalformedAction)
		}

		return ColumnAction{Column: *wire.Column}, nil
	case entity.KindReversi:
		var wire struct {
			Position *int `json:"position"`
			Pass     bool `json:"pass"`
		}
		if err := decode(raw, &wire); err != nil {
			return nil, err
		}

		if wire.Pass {
			return ReversiAction{Pass: true}, nil
		}

		if wire.Position == nil {
			return nil, fmt.Errorf("%w: position is required", ErrMalformedAction)
		}

		return ReversiAction{Position: *wire.Position}, nil
	case entity.KindPoker:
		var action PokerAction
		if err := decode(raw, &action); err != nil {
			return nil, err
		}

		return action, nil
	case entity.KindBlackjack:
		var action BlackjackAction
		if err := decode(raw, &action); err != nil {
			return nil, err
		}

		return action, nil
	default:
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownGameKind, kind)
	}
}

func decode(raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: empty action", ErrMalformedAction)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedAction, err)
	}

	return nil
}
