package usecase

import (
	"encoding/json"

	"github.com/Sodium-2000/super-xo-backend/internal/entity"
)

// send emits one message to a connection. Fire and forget: closed or
// missing connections are skipped, never retried.
func (that *Coordinator) send(conn Conn, msgType string, payload Payload) {
	if conn == nil || !conn.IsOpen() {
		return
	}

	rawPayload, err := json.Marshal(payload)
	if err != nil {
		that.logger.Error("failed to marshal payload", "type", msgType, "error", err)
		return
	}

	raw, err := json.Marshal(Message{Type: msgType, Payload: rawPayload})
	if err != nil {
		that.logger.Error("failed to marshal message", "type", msgType, "error", err)
		return
	}

	conn.Send(raw)
}

func (that *Coordinator) sendError(conn Conn, err error) {
	that.send(conn, TypeError, Payload{Error: err.Error()})
}

// sendToPlayer delivers to the identity's current connection, if any.
func (that *Coordinator) sendToPlayer(playerID, msgType string, payload Payload) {
	if conn, ok := that.conns[playerID]; ok {
		that.send(conn, msgType, payload)
	}
}

// broadcast delivers to every occupied slot of the room.
func (that *Coordinator) broadcast(room *entity.Room, msgType string, payload Payload) {
	for _, playerID := range room.ConnectedPlayers() {
		that.sendToPlayer(playerID, msgType, payload)
	}
}

// notifyPeers delivers to every occupied slot except the given identity.
func (that *Coordinator) notifyPeers(room *entity.Room, exceptID, msgType string, payload Payload) {
	for _, playerID := range room.ConnectedPlayers() {
		if playerID == exceptID {
			continue
		}

		that.sendToPlayer(playerID, msgType, payload)
	}
}

// statePayload is the full-state snapshot sent on join and reconnect.
func statePayload(room *entity.Room, playerID, symbol string) Payload {
	return Payload{
		RoomID:       room.ID,
		RoomCode:     room.Code,
		PlayerID:     playerID,
		PlayerSymbol: symbol,
		GameState:    room.Game,
		CurrentTurn:  room.CurrentTurn,
		ActiveBoard:  intPtr(room.ActiveBoard),
	}
}
