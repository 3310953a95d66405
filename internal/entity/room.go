package entity

import (
	"time"

	"github.com/Sodium-2000/super-xo-backend/internal/apperror"
)

const MaxPlayers = 2

// Room is the authoritative state of one two-player session. Slot 0 is
// always the creator and plays "x", slot 1 the joiner and plays "o".
// Disconnects vacate a slot in place: the identity and symbol stay bound
// to the slot so a reconnecting player gets the same seat back.
type Room struct {
	ID   string
	Code string

	Players  [MaxPlayers]string
	Occupied [MaxPlayers]bool

	Game        *GameState
	CurrentTurn string
	ActiveBoard int
	Moves       int

	CreatedAt    time.Time
	LastActivity time.Time
	LastRestart  time.Time

	RestartVotes map[string]bool
}

func NewRoom(id, code, creatorID string) *Room {
	now := time.Now()

	room := &Room{
		ID:           id,
		Code:         code,
		Game:         NewGameState(),
		CurrentTurn:  PlayerX,
		ActiveBoard:  NoActiveBoard,
		CreatedAt:    now,
		LastActivity: now,
		RestartVotes: make(map[string]bool),
	}

	room.Players[0] = creatorID
	room.Occupied[0] = true

	return room
}

// Join seats a second player. The "o" slot can be taken only while no
// identity has ever held it; a vacated slot belongs to its absent owner
// until the room dies.
func (that *Room) Join(playerID string) (string, error) {
	if that.Players[1] != "" {
		return "", apperror.ErrRoomFull
	}

	that.Players[1] = playerID
	that.Occupied[1] = true

	return PlayerO, nil
}

func (that *Room) SlotOf(playerID string) int {
	for i, id := range that.Players {
		if id != "" && id == playerID {
			return i
		}
	}

	return -1
}

func (that *Room) HasPlayer(playerID string) bool {
	return that.SlotOf(playerID) >= 0
}

func (that *Room) SymbolOf(playerID string) string {
	switch that.SlotOf(playerID) {
	case 0:
		return PlayerX
	case 1:
		return PlayerO
	default:
		return ""
	}
}

// Opponent returns the identity seated in the other slot, occupied or not.
func (that *Room) Opponent(playerID string) string {
	slot := that.SlotOf(playerID)
	if slot < 0 {
		return ""
	}

	return that.Players[1-slot]
}

// Vacate marks a player's slot as unoccupied, keeping the identity and
// symbol bound to it. Reports whether the slot state changed.
func (that *Room) Vacate(playerID string) bool {
	slot := that.SlotOf(playerID)
	if slot < 0 || !that.Occupied[slot] {
		return false
	}

	that.Occupied[slot] = false

	return true
}

// Restore re-occupies the slot still bound to the identity.
func (that *Room) Restore(playerID string) bool {
	slot := that.SlotOf(playerID)
	if slot < 0 || that.Occupied[slot] {
		return false
	}

	that.Occupied[slot] = true

	return true
}

func (that *Room) OccupiedCount() int {
	count := 0
	for _, occupied := range that.Occupied {
		if occupied {
			count++
		}
	}

	return count
}

// ConnectedPlayers returns the identities currently occupying a slot.
func (that *Room) ConnectedPlayers() []string {
	players := make([]string, 0, MaxPlayers)
	for i, occupied := range that.Occupied {
		if occupied {
			players = append(players, that.Players[i])
		}
	}

	return players
}

func (that *Room) AdvanceTurn() {
	that.CurrentTurn = OpponentSymbol(that.CurrentTurn)
}

func (that *Room) Touch() {
	that.LastActivity = time.Now()
}

func (that *Room) ApproveRestart(playerID string) {
	that.RestartVotes[playerID] = true
}

// RestartApproved reports whether every currently seated player has asked
// for a restart.
func (that *Room) RestartApproved() bool {
	return len(that.RestartVotes) >= that.OccupiedCount()
}

// ResetGame starts a fresh game in the same room, keeping seats and
// symbols as they are.
func (that *Room) ResetGame() {
	now := time.Now()

	that.Game = NewGameState()
	that.CurrentTurn = PlayerX
	that.ActiveBoard = NoActiveBoard
	that.Moves = 0
	that.RestartVotes = make(map[string]bool)
	that.LastRestart = now
	that.LastActivity = now
}
