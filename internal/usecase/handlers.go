package usecase

import (
	"encoding/json"
	"time"

	"github.com/Sodium-2000/super-xo-backend/internal/apperror"
	"github.com/Sodium-2000/super-xo-backend/internal/entity"
	"github.com/Sodium-2000/super-xo-backend/internal/metrics"
	"github.com/Sodium-2000/super-xo-backend/internal/pkg"
)

// HandleMessage is the single entry point for inbound traffic. A parse
// failure or unknown type yields a generic error to the sender; handler
// errors become ERROR payloads. Nothing here ever closes the connection.
func (that *Coordinator) HandleMessage(conn Conn, raw []byte) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "HandleMessage")

	var message Message
	if err := json.Unmarshal(raw, &message); err != nil {
		log.Warn("failed to unmarshal message", "error", err)
		that.sendError(conn, apperror.ErrInvalidMessage)

		return
	}

	handler, ok := that.handlers[message.Type]
	if !ok {
		log.Warn("unknown message type", "type", message.Type)
		that.sendError(conn, apperror.ErrInvalidMessage)

		return
	}

	if err := handler(conn, message.Payload); err != nil {
		log.Info("request rejected", "type", message.Type, "error", err)
		that.sendError(conn, err)
	}
}

// HandleDisconnect is called by the transport when a connection closes.
func (that *Coordinator) HandleDisconnect(conn Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.detachSession(conn)
}

// detachSession runs the disconnect bookkeeping for a connection: the
// session is dropped, the slot vacated in place, a ledger record armed
// with its reconnect timer, and the remaining occupant notified. A
// connection without a session detaches as a no-op.
func (that *Coordinator) detachSession(conn Conn) {
	session, ok := that.sessions[conn]
	if !ok {
		return
	}

	delete(that.sessions, conn)

	if current, found := that.conns[session.PlayerID]; found && current == conn {
		delete(that.conns, session.PlayerID)
	}

	room, ok := that.rooms[session.RoomID]
	if !ok {
		return
	}

	if !room.Vacate(session.PlayerID) {
		return
	}

	that.disconnected[session.PlayerID] = &entity.DisconnectionRecord{
		PlayerID:       session.PlayerID,
		RoomID:         session.RoomID,
		Symbol:         session.Symbol,
		DisconnectedAt: time.Now(),
	}
	that.armReconnectTimer(session.PlayerID)

	that.broadcast(room, TypePlayerDisconnected, Payload{
		Message:      "Opponent disconnected, reconnection possible",
		CanReconnect: boolPtr(true),
	})

	that.logger.Info("player detached", "playerID", session.PlayerID, "roomID", session.RoomID)
}

// attachSession binds a connection to its seat, first detaching it from
// any previous room so a connection holds at most one slot.
func (that *Coordinator) attachSession(conn Conn, playerID, roomID, symbol string) {
	that.detachSession(conn)

	that.sessions[conn] = &entity.PlayerSession{
		PlayerID: playerID,
		RoomID:   roomID,
		Symbol:   symbol,
	}
	that.conns[playerID] = conn
}

func (that *Coordinator) handleCreateRoom(conn Conn, _ []byte) error {
	log := that.logger.With("method", "handleCreateRoom")

	// Codes are unique by construction: regenerate on collision.
	code := pkg.GenerateRoomCode()
	for {
		if _, taken := that.roomCodes[code]; !taken {
			break
		}

		code = pkg.GenerateRoomCode()
	}

	playerID := pkg.GeneratePlayerID()
	room := entity.NewRoom(pkg.GenerateRoomID(), code, playerID)

	that.rooms[room.ID] = room
	that.roomCodes[room.Code] = room.ID
	that.attachSession(conn, playerID, room.ID, entity.PlayerX)

	that.armIncompleteTimer(room.ID)

	metrics.RoomsCreated.Inc()
	metrics.LiveRooms.Set(float64(len(that.rooms)))

	that.send(conn, TypeRoomCreated, Payload{
		RoomID:       room.ID,
		RoomCode:     room.Code,
		PlayerID:     playerID,
		PlayerSymbol: entity.PlayerX,
	})

	log.Info("room created", "roomID", room.ID, "roomCode", room.Code)

	return nil
}

func (that *Coordinator) handleJoinRoom(conn Conn, payload []byte) error {
	log := that.logger.With("method", "handleJoinRoom")

	request, err := parsePayload(payload)
	if err != nil {
		return err
	}

	if request.RoomCode == "" {
		return apperror.ErrMissingFields
	}

	room, ok := that.roomByCode(request.RoomCode)
	if !ok {
		return apperror.ErrRoomNotFound
	}

	playerID := pkg.GeneratePlayerID()

	symbol, err := room.Join(playerID)
	if err != nil {
		return err
	}

	that.attachSession(conn, playerID, room.ID, symbol)
	that.cancelIncompleteTimer(room.ID)
	room.Touch()

	that.send(conn, TypeRoomJoined, statePayload(room, playerID, symbol))
	that.notifyPeers(room, playerID, TypeOpponentJoined, Payload{
		Message: "Opponent joined the room",
	})

	log.Info("player joined", "roomID", room.ID, "playerID", playerID)

	return nil
}

func (that *Coordinator) handleReconnect(conn Conn, payload []byte) error {
	log := that.logger.With("method", "handleReconnect")

	request, err := parsePayload(payload)
	if err != nil {
		return err
	}

	if request.PlayerID == "" || request.RoomCode == "" {
		return apperror.ErrMissingFields
	}

	record, ok := that.disconnected[request.PlayerID]
	if !ok {
		return apperror.ErrNoReconnectRecord
	}

	room, ok := that.rooms[record.RoomID]
	if !ok {
		that.purgeRecord(request.PlayerID)

		return apperror.ErrRoomNotFound
	}

	if room.Code != request.RoomCode {
		that.purgeRecord(request.PlayerID)

		return apperror.ErrNoReconnectRecord
	}

	if !room.HasPlayer(request.PlayerID) {
		that.purgeRecord(request.PlayerID)

		return apperror.ErrPlayerNotInRoom
	}

	room.Restore(request.PlayerID)
	that.purgeRecord(request.PlayerID)
	that.attachSession(conn, request.PlayerID, room.ID, record.Symbol)

	if room.OccupiedCount() == entity.MaxPlayers {
		that.cancelIncompleteTimer(room.ID)
	}

	room.Touch()

	metrics.Reconnects.Inc()

	that.send(conn, TypeReconnected, statePayload(room, request.PlayerID, record.Symbol))
	that.notifyPeers(room, request.PlayerID, TypePlayerReconnected, Payload{
		Message: "Opponent reconnected",
	})

	log.Info("player reconnected", "roomID", room.ID, "playerID", request.PlayerID)

	return nil
}

func (that *Coordinator) handleMakeMove(conn Conn, payload []byte) error {
	request, err := parsePayload(payload)
	if err != nil {
		return err
	}

	if request.BoardIndex == nil || request.CellIndex == nil {
		return apperror.ErrMissingFields
	}

	board, cell := *request.BoardIndex, *request.CellIndex
	if board < 0 || board >= entity.BoardCount || cell < 0 || cell >= entity.CellCount {
		return apperror.ErrInvalidMessage
	}

	session, ok := that.sessions[conn]
	if !ok {
		return apperror.ErrPlayerNotInRoom
	}

	room, ok := that.rooms[session.RoomID]
	if !ok {
		return apperror.ErrRoomNotFound
	}

	if room.CurrentTurn != session.Symbol {
		return apperror.ErrNotYourTurn
	}

	if that.settings.StrictMoves {
		if room.Game.Cell(board, cell) != entity.EmptyCell {
			return apperror.ErrCellOccupied
		}

		if room.ActiveBoard != entity.NoActiveBoard && board != room.ActiveBoard {
			return apperror.ErrWrongBoard
		}
	}

	room.Game.SetCell(board, cell, session.Symbol)
	room.Game.MarkBoard(board, that.resolver.Resolve(room.Game.Boards[board].Cells))
	room.Moves++

	that.broadcast(room, TypeMoveMade, Payload{
		PlayedBy:   session.Symbol,
		PlayerID:   session.PlayerID,
		BoardIndex: intPtr(board),
		CellIndex:  intPtr(cell),
	})

	room.AdvanceTurn()
	room.ActiveBoard = room.Game.NextActiveBoard(cell)
	room.Touch()

	metrics.MovesPlayed.Inc()

	return nil
}

func (that *Coordinator) handleRestartGame(conn Conn, _ []byte) error {
	log := that.logger.With("method", "handleRestartGame")

	session, ok := that.sessions[conn]
	if !ok {
		return apperror.ErrPlayerNotInRoom
	}

	room, ok := that.rooms[session.RoomID]
	if !ok {
		return apperror.ErrRoomNotFound
	}

	// Debounced: a request right after a completed restart is dropped
	// without any broadcast or mutation.
	if !room.LastRestart.IsZero() && time.Since(room.LastRestart) < that.settings.RestartDebounce {
		return nil
	}

	room.ApproveRestart(session.PlayerID)

	if !room.RestartApproved() {
		that.notifyPeers(room, session.PlayerID, TypeRestartRequested, Payload{
			Message: "Opponent requested a restart",
		})

		return nil
	}

	that.archiveMatch(room, entity.MatchEndedRestart)
	room.ResetGame()

	that.broadcast(room, TypeGameRestarted, Payload{
		GameState:   room.Game,
		CurrentTurn: room.CurrentTurn,
		ActiveBoard: intPtr(room.ActiveBoard),
	})

	log.Info("game restarted", "roomID", room.ID)

	return nil
}

func (that *Coordinator) handleLeaveRoom(conn Conn, _ []byte) error {
	session, ok := that.sessions[conn]
	if !ok {
		return apperror.ErrPlayerNotInRoom
	}

	room, ok := that.rooms[session.RoomID]
	if !ok {
		delete(that.sessions, conn)
		delete(that.conns, session.PlayerID)

		return nil
	}

	that.notifyPeers(room, session.PlayerID, TypeOpponentLeft, Payload{
		Message: "Opponent left the room",
	})

	that.deleteRoom(room, entity.MatchEndedLeave)

	return nil
}

func (that *Coordinator) handleCheckRoom(conn Conn, payload []byte) error {
	request, err := parsePayload(payload)
	if err != nil {
		return err
	}

	if request.RoomCode == "" || request.PlayerID == "" {
		return apperror.ErrMissingFields
	}

	room, exists := that.roomByCode(request.RoomCode)

	wasInRoom := exists && room.HasPlayer(request.PlayerID)

	hasOpponent := false
	if exists {
		for _, playerID := range room.ConnectedPlayers() {
			if playerID != request.PlayerID {
				hasOpponent = true
			}
		}
	}

	record, recorded := that.disconnected[request.PlayerID]
	canReconnect := recorded && exists && record.RoomID == room.ID

	that.send(conn, TypeRoomCheckResult, Payload{
		Exists:       boolPtr(exists),
		WasInRoom:    boolPtr(wasInRoom),
		HasOpponent:  boolPtr(hasOpponent),
		CanReconnect: boolPtr(canReconnect),
	})

	return nil
}

func (that *Coordinator) roomByCode(code string) (*entity.Room, bool) {
	roomID, ok := that.roomCodes[code]
	if !ok {
		return nil, false
	}

	room, ok := that.rooms[roomID]

	return room, ok
}

// purgeRecord drops a ledger record together with its pending timer.
func (that *Coordinator) purgeRecord(playerID string) {
	that.cancelReconnectTimer(playerID)
	delete(that.disconnected, playerID)
}

func parsePayload(raw []byte) (*Payload, error) {
	payload := &Payload{}
	if len(raw) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, apperror.ErrInvalidMessage
	}

	return payload, nil
}
