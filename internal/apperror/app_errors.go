package apperror

import "errors"

var (
	ErrGameFinished   = errors.New("game is already finished")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrRoomNotFound   = errors.New("room not found")
	ErrNotInRoom      = errors.New("you are not a player in this room")
	ErrAlreadyInRoom  = errors.New("already in a room")
	ErrInvalidAction  = errors.New("invalid action payload")
	ErrInvalidMessage = errors.New("invalid message")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
)
