package usecase

import (
	"context"
	"time"

	"github.com/Sodium-2000/super-xo-backend/internal/entity"
	"github.com/Sodium-2000/super-xo-backend/internal/metrics"
)

// Timer callbacks capture only identifiers and re-validate against the
// live registries under the mutex at fire time, so a timer that outlives
// its triggering condition is a safe no-op.

func (that *Coordinator) armIncompleteTimer(roomID string) {
	that.cancelIncompleteTimer(roomID)

	that.incompleteTimers[roomID] = time.AfterFunc(that.settings.IncompleteTimeout, func() {
		that.onIncompleteTimeout(roomID)
	})
}

func (that *Coordinator) cancelIncompleteTimer(roomID string) {
	if timer, ok := that.incompleteTimers[roomID]; ok {
		timer.Stop()
		delete(that.incompleteTimers, roomID)
	}
}

// onIncompleteTimeout deletes a room that never got its second player.
// Fires only while exactly one slot is occupied.
func (that *Coordinator) onIncompleteTimeout(roomID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.incompleteTimers, roomID)

	room, ok := that.rooms[roomID]
	if !ok || room.OccupiedCount() != 1 {
		return
	}

	that.expireRoom(room, "Room closed: no opponent joined in time")
}

func (that *Coordinator) armReconnectTimer(playerID string) {
	that.cancelReconnectTimer(playerID)

	that.reconnectTimers[playerID] = time.AfterFunc(that.settings.ReconnectWindow, func() {
		that.onReconnectTimeout(playerID)
	})
}

func (that *Coordinator) cancelReconnectTimer(playerID string) {
	if timer, ok := that.reconnectTimers[playerID]; ok {
		timer.Stop()
		delete(that.reconnectTimers, playerID)
	}
}

// onReconnectTimeout expires a ledger record. The room goes with it once
// no slot is occupied anymore; the record goes regardless.
func (that *Coordinator) onReconnectTimeout(playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.reconnectTimers, playerID)

	record, ok := that.disconnected[playerID]
	if !ok {
		return
	}

	delete(that.disconnected, playerID)

	room, ok := that.rooms[record.RoomID]
	if !ok {
		return
	}

	if room.OccupiedCount() == 0 {
		that.deleteRoom(room, entity.MatchEndedTimeout)
		metrics.RoomTimeouts.Inc()
	}
}

// expireRoom notifies every occupant and deletes the room.
func (that *Coordinator) expireRoom(room *entity.Room, message string) {
	that.broadcast(room, TypeRoomTimeout, Payload{Message: message})
	that.deleteRoom(room, entity.MatchEndedTimeout)
	metrics.RoomTimeouts.Inc()
}

// RunSweeper periodically reclaims rooms the one-shot timers missed.
// Blocks until the context is cancelled.
func (that *Coordinator) RunSweeper(ctx context.Context) {
	log := that.logger.With("method", "RunSweeper")

	ticker := time.NewTicker(that.settings.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			that.sweep()
		case <-ctx.Done():
			log.Info("sweeper stopped")
			return
		}
	}
}

func (that *Coordinator) sweep() {
	that.mu.Lock()
	defer that.mu.Unlock()

	now := time.Now()

	stale := make([]*entity.Room, 0)
	for _, room := range that.rooms {
		stale = append(stale, room)
	}

	for _, room := range stale {
		if _, ok := that.rooms[room.ID]; !ok {
			continue
		}

		switch room.OccupiedCount() {
		case 0:
			that.deleteRoom(room, entity.MatchEndedTimeout)
			metrics.RoomTimeouts.Inc()
		case 1:
			if now.Sub(room.CreatedAt) > that.settings.IncompleteTimeout {
				that.expireRoom(room, "Room closed: no opponent joined in time")
			}
		default:
			if now.Sub(room.LastActivity) > that.settings.StaleThreshold {
				that.expireRoom(room, "Room closed: inactive for too long")
			}
		}
	}

	// Ledger records past the reconnect window whose timer never fired.
	for playerID, record := range that.disconnected {
		if now.Sub(record.DisconnectedAt) > that.settings.ReconnectWindow {
			that.purgeRecord(playerID)
		}
	}
}
