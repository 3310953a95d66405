package websocket

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient() *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return newClient(logger, nil)
}

func TestClient_Send(t *testing.T) {
	t.Run("Send after close is dropped silently", func(t *testing.T) {
		// Given: a client whose connection already closed
		client := newTestClient()
		client.markClosed()

		// When: the coordinator still tries to send
		client.Send([]byte(`{"type":"MOVE_MADE"}`))

		// Then: the message is skipped, nothing queued, no panic
		assert.False(t, client.IsOpen())
		assert.Empty(t, client.sendCh)
	})

	t.Run("Concurrent sends racing a close never panic", func(t *testing.T) {
		// Given: many broadcast goroutines hammering one client
		for i := 0; i < 200; i++ {
			client := newTestClient()

			var wg sync.WaitGroup
			for sender := 0; sender < 8; sender++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					client.Send([]byte("payload"))
				}()
			}

			// When: the read side closes the client mid-broadcast
			client.markClosed()
			wg.Wait()

			// Then: the client reports closed; a send-on-closed-channel
			// panic here would fail the test run
			assert.False(t, client.IsOpen())
		}
	})

	t.Run("Closing twice is safe", func(t *testing.T) {
		client := newTestClient()

		client.markClosed()
		client.markClosed()

		assert.False(t, client.IsOpen())
	})

	t.Run("A full buffer drops messages instead of blocking", func(t *testing.T) {
		// Given: a client whose write pump is not draining
		client := newTestClient()

		// When: more messages arrive than the buffer holds
		for i := 0; i < sendBufferSize+10; i++ {
			client.Send([]byte("payload"))
		}

		// Then: the buffer caps out and the overflow is dropped
		assert.Len(t, client.sendCh, sendBufferSize)
		assert.True(t, client.IsOpen())
	})
}

func TestClient_IsOpen(t *testing.T) {
	// Given: a fresh client
	client := newTestClient()

	// Then: it reports open until closed
	assert.True(t, client.IsOpen())

	client.markClosed()

	assert.False(t, client.IsOpen())
}
