package apperror

import "errors"

// Sentinel errors whose text goes to the client verbatim in ERROR payloads.
var (
	ErrRoomNotFound    = errors.New("Room not found")
	ErrRoomFull        = errors.New("Room is full")
	ErrNotYourTurn     = errors.New("Not your turn")
	ErrPlayerNotInRoom = errors.New("Player not in a room")

	ErrInvalidMessage    = errors.New("Invalid message")
	ErrMissingFields     = errors.New("Missing required fields")
	ErrNoReconnectRecord = errors.New("Reconnection not possible")
	ErrCellOccupied      = errors.New("Cell is already occupied")
	ErrWrongBoard        = errors.New("Move is outside the active board")
)
