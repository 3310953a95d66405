package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sodium-2000/super-xo-backend/internal/config"
	"github.com/Sodium-2000/super-xo-backend/internal/repository"
	"github.com/Sodium-2000/super-xo-backend/internal/repository/storage"
	"github.com/Sodium-2000/super-xo-backend/internal/superxo"
	"github.com/Sodium-2000/super-xo-backend/internal/usecase"
	"github.com/Sodium-2000/super-xo-backend/transport/rest"
	"github.com/Sodium-2000/super-xo-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	// The match archive is optional: without a redis host finished games
	// are simply not recorded.
	var archive usecase.MatchArchive

	if redisAddr := conf.Redis.GetRedisAddr(); redisAddr != "" {
		redisStorage, err := storage.NewRedisStorage(ctx, redisAddr)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		archive = repository.NewMatchRepository(redisStorage.Connection)
	} else {
		log.Info("redis host is empty, match archive disabled")
	}

	settings := usecase.Settings{
		ReconnectWindow:   conf.Rooms.ReconnectWindow,
		IncompleteTimeout: conf.Rooms.IncompleteTimeout,
		SweepInterval:     conf.Rooms.SweepInterval,
		StaleThreshold:    conf.Rooms.StaleThreshold,
		RestartDebounce:   conf.Rooms.RestartDebounce,
		StrictMoves:       conf.Rooms.StrictMoves,
	}

	coordinator := usecase.NewCoordinator(logger, settings, superxo.NewResolver(), archive)

	go coordinator.RunSweeper(ctx)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, coordinator)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
