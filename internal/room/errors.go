package room

import "errors"

var (
	ErrNotFound         = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrNameTaken        = errors.New("that name is already taken")
	ErrBadNickname      = errors.New("nickname must be 1-20 characters")
	ErrGameStarted      = errors.New("game has already started")
	ErrGameNotStarted   = errors.New("game has not started")
	ErrNotHost          = errors.New("only the host can do that")
	ErrNotEnoughPlayers = errors.New("need at least 2 players to start")
	ErrNotInRoom        = errors.New("player is not in this room")
)
