package entity

import "time"

// Reasons a match record was written.
const (
	MatchEndedRestart = "restart"
	MatchEndedLeave   = "leave"
	MatchEndedTimeout = "timeout"
)

// MatchRecord is the archived summary of one played game. Records are a
// write-only sink; live sessions never read them back.
type MatchRecord struct {
	RoomID    string             `json:"roomId"`
	RoomCode  string             `json:"roomCode"`
	Players   [MaxPlayers]string `json:"players"`
	Winner    string             `json:"winner,omitempty"`
	Moves     int                `json:"moves"`
	StartedAt time.Time          `json:"startedAt"`
	EndedAt   time.Time          `json:"endedAt"`
	Reason    string             `json:"reason"`
}
