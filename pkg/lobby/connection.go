package lobby

import (
	"sync"

	"github.com/parlorgames/parlor/pkg/game"
	"github.com/parlorgames/parlor/pkg/log"
)

// eventBufferSize is the number of outbound events a connection can
// buffer before notifications are dropped.
const eventBufferSize = 64

// MoveEvent is an applied move fanned out to session streams.
type MoveEvent struct {
	Player game.PlayerID
	Data   []byte
}

// Event is a single outbound notification: either an applied move or
// an error addressed to this connection's owner.
type Event struct {
	Move *MoveEvent
	Err  error
}

// Connection is one user's live session stream attachment to a lobby.
// The lobby pushes events into the buffered channel; the session
// transport drains it.
type Connection struct {
	user   uint64
	mu     sync.Mutex
	closed bool
	events chan Event
}

func NewConnection(user uint64) *Connection {
	return &Connection{
		user:   user,
		events: make(chan Event, eventBufferSize),
	}
}

func (c *Connection) User() uint64 {
	return c.user
}

// Events returns the outbound event stream. The channel is closed when
// the connection is closed.
func (c *Connection) Events() <-chan Event {
	return c.events
}

// Notify pushes an applied move to this connection. Events are dropped
// if the receiver is too slow to drain its buffer.
func (c *Connection) Notify(player game.PlayerID, data []byte) {
	c.send(Event{Move: &MoveEvent{Player: player, Data: data}})
}

// NotifyError pushes an error event addressed to this connection's
// owner only.
func (c *Connection) NotifyError(err error) {
	c.send(Event{Err: err})
}

func (c *Connection) send(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.events <- event:
	default:
		log.Warn("dropping event for user %d: buffer full", c.user)
	}
}

// Close closes the outbound event stream. Safe to call more than once;
// notifications after Close are ignored.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.events)
}
