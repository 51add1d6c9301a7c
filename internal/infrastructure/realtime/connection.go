package realtime

import (
	"sync"

	"github.com/johnquangdev/interview-assistant/internal/domain/entities"
)

// Connection is one registered observer. Outbound frames go through a bounded
// queue drained by a single writer, so frames reach the observer in enqueue order.
type Connection struct {
	id   string
	send chan []byte
	done chan struct{}

	closeOnce sync.Once

	// guarded by the registry mutex
	rooms map[string]struct{}
}

func newConnection(id string, buffer int) *Connection {
	if buffer < 1 {
		buffer = 1
	}
	return &Connection{
		id:    id,
		send:  make(chan []byte, buffer),
		done:  make(chan struct{}),
		rooms: make(map[string]struct{}),
	}
}

// ID returns the connection id
func (c *Connection) ID() string { return c.id }

// Messages is drained by the connection's writer
func (c *Connection) Messages() <-chan []byte { return c.send }

// Done is closed once the connection is closed
func (c *Connection) Done() <-chan struct{} { return c.done }

// Close marks the connection closed. Safe to call more than once.
func (c *Connection) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Closed reports whether Close was called
func (c *Connection) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// enqueue never blocks. The send channel is never closed, so a racing Close
// cannot make this panic.
func (c *Connection) enqueue(frame []byte) error {
	if c.Closed() {
		return entities.ErrConnectionClosed
	}
	select {
	case c.send <- frame:
		return nil
	default:
		return entities.ErrSendBufferFull
	}
}
