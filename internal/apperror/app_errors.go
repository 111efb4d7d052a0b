package apperror

import "errors"

var (
	ErrOutOfRange     = errors.New("index out of range")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrBoardTerminal  = errors.New("sub-board is already decided")
	ErrWrongBoard     = errors.New("move is outside the active sub-board")
	ErrGameFinished   = errors.New("game is already finished")
	ErrGameNotStarted = errors.New("game is not started")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrRoomFull       = errors.New("room is full")
	ErrRoomNotFound   = errors.New("room does not exist")
)
