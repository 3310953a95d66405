package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Sodium-2000/super-xo-backend/internal/entity"
	"github.com/Sodium-2000/super-xo-backend/internal/metrics"
)

// Conn is the transport-side handle for one client connection. Send must
// never block: the transport buffers outbound messages and drops the
// connection when the buffer overflows.
type Conn interface {
	Send(message []byte)
	IsOpen() bool
}

type boardResolver interface {
	Resolve(cells [entity.CellCount]string) string
	GameWinner(state *entity.GameState) string
}

// MatchArchive receives summaries of finished games. Optional: a nil
// archive disables recording.
type MatchArchive interface {
	Save(ctx context.Context, record *entity.MatchRecord) error
}

// Settings are the lifecycle tuning knobs of the coordinator.
type Settings struct {
	ReconnectWindow   time.Duration
	IncompleteTimeout time.Duration
	SweepInterval     time.Duration
	StaleThreshold    time.Duration
	RestartDebounce   time.Duration
	StrictMoves       bool
}

// Coordinator owns every room, session and timer in the process. All
// message handlers and timer callbacks run under one mutex, so each
// event mutates state and emits its messages atomically.
type Coordinator struct {
	logger   *slog.Logger
	settings Settings
	resolver boardResolver
	archive  MatchArchive

	mu           sync.Mutex
	rooms        map[string]*entity.Room
	roomCodes    map[string]string
	sessions     map[Conn]*entity.PlayerSession
	conns        map[string]Conn
	disconnected map[string]*entity.DisconnectionRecord

	reconnectTimers  map[string]*time.Timer
	incompleteTimers map[string]*time.Timer

	handlers map[string]func(conn Conn, payload []byte) error
}

// NewCoordinator wires the message handlers. The archive may be nil, in
// which case finished games are simply not recorded.
func NewCoordinator(logger *slog.Logger, settings Settings, resolver boardResolver, archive MatchArchive) *Coordinator {
	coordinator := &Coordinator{
		logger:   logger.With("component", "coordinator"),
		settings: settings,
		resolver: resolver,
		archive:  archive,

		rooms:        make(map[string]*entity.Room),
		roomCodes:    make(map[string]string),
		sessions:     make(map[Conn]*entity.PlayerSession),
		conns:        make(map[string]Conn),
		disconnected: make(map[string]*entity.DisconnectionRecord),

		reconnectTimers:  make(map[string]*time.Timer),
		incompleteTimers: make(map[string]*time.Timer),

		handlers: make(map[string]func(Conn, []byte) error),
	}

	coordinator.handlers[TypeCreateRoom] = coordinator.handleCreateRoom
	coordinator.handlers[TypeJoinRoom] = coordinator.handleJoinRoom
	coordinator.handlers[TypeReconnect] = coordinator.handleReconnect
	coordinator.handlers[TypeMakeMove] = coordinator.handleMakeMove
	coordinator.handlers[TypeRestartGame] = coordinator.handleRestartGame
	coordinator.handlers[TypeLeaveRoom] = coordinator.handleLeaveRoom
	coordinator.handlers[TypeCheckRoom] = coordinator.handleCheckRoom

	return coordinator
}

// deleteRoom removes the room and everything hanging off it: its code,
// the sessions of seated players, ledger records and timers of both
// identities. Safe to call for a room that is already half torn down.
func (that *Coordinator) deleteRoom(room *entity.Room, reason string) {
	log := that.logger.With("method", "deleteRoom")

	that.cancelIncompleteTimer(room.ID)

	for _, playerID := range room.Players {
		if playerID == "" {
			continue
		}

		that.cancelReconnectTimer(playerID)
		delete(that.disconnected, playerID)

		if conn, ok := that.conns[playerID]; ok {
			delete(that.sessions, conn)
			delete(that.conns, playerID)
		}
	}

	delete(that.roomCodes, room.Code)
	delete(that.rooms, room.ID)

	that.archiveMatch(room, reason)

	metrics.LiveRooms.Set(float64(len(that.rooms)))

	log.Info("room deleted", "roomID", room.ID, "roomCode", room.Code, "reason", reason)
}

// archiveMatch hands a finished game to the archive. Fire and forget: the
// write happens off the coordinator goroutine and failures are only logged.
func (that *Coordinator) archiveMatch(room *entity.Room, reason string) {
	if that.archive == nil || room.Moves == 0 {
		return
	}

	startedAt := room.LastRestart
	if startedAt.IsZero() {
		startedAt = room.CreatedAt
	}

	record := &entity.MatchRecord{
		RoomID:    room.ID,
		RoomCode:  room.Code,
		Players:   room.Players,
		Winner:    that.resolver.GameWinner(room.Game),
		Moves:     room.Moves,
		StartedAt: startedAt,
		EndedAt:   time.Now(),
		Reason:    reason,
	}

	log := that.logger.With("method", "archiveMatch")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := that.archive.Save(ctx, record); err != nil {
			log.Error("failed to archive match", "roomID", record.RoomID, "error", err)
		}
	}()
}
