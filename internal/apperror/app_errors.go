package apperror

import "errors"

var (
	ErrOutOfBounds  = errors.New("cell index out of bounds")
	ErrInvalidMove  = errors.New("cell is already occupied")
	ErrInvalidMark  = errors.New("invalid player mark")
	ErrInvalidState = errors.New("no legal moves in this position")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrGameFinished = errors.New("game is already finished")
	ErrGameNotFound = errors.New("game not found")
)
