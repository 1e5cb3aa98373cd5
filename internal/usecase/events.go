package usecase

import (
	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
	"github.com/rocketscienceinc/gameroom-backend/internal/game"
)

// Outbound event names.
const (
	EventMatchFound           = "match-found"
	EventWaitingForMatch      = "waiting-for-match"
	EventGameUpdate           = "game-update"
	EventGameOver             = "game-over"
	EventError                = "error"
	EventOpponentDisconnected = "opponent-disconnected"
)

type MatchFoundPayload struct {
	RoomID      string          `json:"roomId"`
	GameType    entity.GameKind `json:"gameType"`
	PlayerIndex int             `json:"playerIndex"`
	Opponent    string          `json:"opponent"`
	GameState   game.State      `json:"gameState"`
}

type GameUpdatePayload struct {
	GameState   game.State  `json:"gameState"`
	CurrentTurn int         `json:"currentTurn"`
	LastAction  game.Action `json:"lastAction"`
}

type GameOverPayload struct {
	Winner int    `json:"winner"`
	Reason string `json:"reason"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type EmptyPayload struct{}
