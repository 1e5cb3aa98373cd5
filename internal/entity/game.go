package entity

import (
	"errors"
	"fmt"
	"time"
)

type GameKind string

const (
	KindTicTacToe   GameKind = "tic-tac-toe"
	KindConnectFour GameKind = "connect4"
	KindReversi     GameKind = "reversi"
	KindPoker       GameKind = "poker"
	KindBlackjack   GameKind = "blackjack"
)

var ErrUnknownGameKind = errors.New("unknown game type")

// Kinds lists every game kind the server can host.
var Kinds = []GameKind{
	KindTicTacToe,
	KindConnectFour,
	KindReversi,
	KindPoker,
	KindBlackjack,
}

// ParseGameKind - validates a client supplied game type.
func ParseGameKind(value string) (GameKind, error) {
	for _, kind := range Kinds {
		if string(kind) == value {
			return kind, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownGameKind, value)
}

type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// GameRecord is one finished game as seen by a single identity.
type GameRecord struct {
	GameKind  GameKind  `json:"gameType"`
	Result    Outcome   `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

type Stats struct {
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	Draws       int `json:"draws"`
	GamesPlayed int `json:"gamesPlayed"`
}

func (that *Stats) Add(outcome Outcome) {
	switch outcome {
	case OutcomeWin:
		that.Wins++
	case OutcomeLoss:
		that.Losses++
	case OutcomeDraw:
		that.Draws++
	}

	that.GamesPlayed++
}
