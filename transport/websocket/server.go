package websocket

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Sodium-2000/super-xo-backend/internal/metrics"
	"github.com/Sodium-2000/super-xo-backend/internal/usecase"
)

// gateway is the session core seen from the transport edge.
type gateway interface {
	HandleMessage(conn usecase.Conn, message []byte)
	HandleDisconnect(conn usecase.Conn)
}

type Server struct {
	logger   *slog.Logger
	gateway  gateway
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, gateway gateway) *Server {
	return &Server{
		logger:  logger.With("component", "websocket"),
		gateway: gateway,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
	}
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 90 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS upgrades the connection and runs its pumps until it closes.
func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := newClient(that.logger, conn)

	metrics.OpenConnections.Inc()
	log.Info("websocket connection established", "remote", req.RemoteAddr)

	go client.writePump()
	go func() {
		client.readPump(that.gateway)
		metrics.OpenConnections.Dec()
	}()
}
