package usecase

import (
	"encoding/json"

	"github.com/Sodium-2000/super-xo-backend/internal/entity"
)

// Inbound message types.
const (
	TypeCreateRoom  = "CREATE_ROOM"
	TypeJoinRoom    = "JOIN_ROOM"
	TypeReconnect   = "RECONNECT"
	TypeMakeMove    = "MAKE_MOVE"
	TypeRestartGame = "RESTART_GAME"
	TypeLeaveRoom   = "LEAVE_ROOM"
	TypeCheckRoom   = "CHECK_ROOM"
)

// Outbound message types.
const (
	TypeRoomCreated        = "ROOM_CREATED"
	TypeRoomJoined         = "ROOM_JOINED"
	TypeOpponentJoined     = "OPPONENT_JOINED"
	TypeReconnected        = "RECONNECTED"
	TypePlayerReconnected  = "PLAYER_RECONNECTED"
	TypeMoveMade           = "MOVE_MADE"
	TypeGameRestarted      = "GAME_RESTARTED"
	TypeRestartRequested   = "RESTART_REQUESTED"
	TypeOpponentLeft       = "OPPONENT_LEFT"
	TypeRoomCheckResult    = "ROOM_CHECK_RESULT"
	TypeRoomTimeout        = "ROOM_TIMEOUT"
	TypePlayerDisconnected = "PLAYER_DISCONNECTED"
	TypeError              = "ERROR"
)

// Message is one protocol frame in either direction.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload covers every inbound and outbound payload shape. Optional
// numeric and boolean fields are pointers so that zero values survive the
// round trip and missing fields are detectable.
type Payload struct {
	RoomID       string            `json:"roomId,omitempty"`
	RoomCode     string            `json:"roomCode,omitempty"`
	PlayerID     string            `json:"playerId,omitempty"`
	PlayerSymbol string            `json:"playerSymbol,omitempty"`
	GameState    *entity.GameState `json:"gameState,omitempty"`
	CurrentTurn  string            `json:"currentTurn,omitempty"`
	ActiveBoard  *int              `json:"activeBoard,omitempty"`

	BoardIndex *int   `json:"boardIndex,omitempty"`
	CellIndex  *int   `json:"cellIndex,omitempty"`
	PlayedBy   string `json:"playedBy,omitempty"`

	Message      string `json:"message,omitempty"`
	CanReconnect *bool  `json:"canReconnect,omitempty"`

	Exists      *bool `json:"exists,omitempty"`
	WasInRoom   *bool `json:"wasInRoom,omitempty"`
	HasOpponent *bool `json:"hasOpponent,omitempty"`

	Error string `json:"error,omitempty"`
}

func intPtr(value int) *int {
	return &value
}

func boolPtr(value bool) *bool {
	return &value
}
