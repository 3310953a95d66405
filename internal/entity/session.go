package entity

import "time"

// PlayerSession binds an open connection to its seat. It lives exactly as
// long as the connection is attached to a room.
type PlayerSession struct {
	PlayerID string
	RoomID   string
	Symbol   string
}

// DisconnectionRecord remembers a vacated seat so its owner can claim it
// back within the reconnect window.
type DisconnectionRecord struct {
	PlayerID       string
	RoomID         string
	Symbol         string
	DisconnectedAt time.Time
}
