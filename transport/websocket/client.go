package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096

	sendBufferSize = 256
)

// Client wraps one websocket connection behind the coordinator's Conn
// interface. Send never blocks and never panics: messages queue on a
// buffered channel that is never closed, and shutdown is signalled
// through a separate done channel so concurrent senders are safe against
// the read side closing the connection.
type Client struct {
	logger *slog.Logger
	conn   *websocket.Conn

	sendCh    chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(logger *slog.Logger, conn *websocket.Conn) *Client {
	return &Client{
		logger: logger,
		conn:   conn,
		sendCh: make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}
}

// Send queues one outbound message. Drops it when the connection is
// closing or the buffer is full.
func (that *Client) Send(message []byte) {
	select {
	case <-that.done:
		return
	default:
	}

	select {
	case that.sendCh <- message:
	case <-that.done:
	default:
		that.logger.Warn("send buffer full, message dropped")
	}
}

func (that *Client) IsOpen() bool {
	select {
	case <-that.done:
		return false
	default:
		return true
	}
}

func (that *Client) markClosed() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}

// readPump feeds inbound messages to the gateway until the connection
// drops, then runs the disconnect path exactly once.
func (that *Client) readPump(core gateway) {
	defer func() {
		that.markClosed()
		_ = that.conn.Close()
		core.HandleDisconnect(that)
	}()

	that.conn.SetReadLimit(maxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, message, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				that.logger.Warn("websocket read failed", "error", err)
			}

			return
		}

		if messageType == websocket.TextMessage {
			core.HandleMessage(that, message)
		}
	}
}

// writePump drains the send buffer and keeps the connection alive with
// pings until the done channel is closed.
func (that *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case message := <-that.sendCh:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				that.logger.Warn("websocket write failed", "error", err)
				return
			}
		case <-that.done:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = that.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
