package www

import (
	"errors"
	"sync"
	"time"
)

var (
	errConnClosed  = errors.New("connection closed")
	errConnStalled = errors.New("connection buffer full")
)

// Conn is one open push connection. It carries no state beyond being open
// or closed; the transport layer drains Messages until Done closes.
type Conn struct {
	ch        chan string
	done      chan struct{}
	closeOnce sync.Once
}

func newConn() *Conn {
	return &Conn{
		ch:   make(chan string, 16),
		done: make(chan struct{}),
	}
}

// Messages is the FIFO stream of broadcast messages for this connection.
func (c *Conn) Messages() <-chan string { return c.ch }

// Done closes when the connection has been removed from the hub.
func (c *Conn) Done() <-chan struct{} { return c.done }

// Close marks the connection closed. Idempotent.
func (c *Conn) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// send queues a message without blocking. A closed connection or a full
// buffer counts as a delivery failure.
func (c *Conn) send(msg string) error {
	select {
	case <-c.done:
		return errConnClosed
	default:
	}
	select {
	case c.ch <- msg:
		return nil
	case <-c.done:
		return errConnClosed
	default:
		return errConnStalled
	}
}

// Hub holds the set of currently open push connections and fans messages
// out to all of them. Subscribe, Remove and Broadcast run concurrently from
// independent triggers (client arrivals, idle timers, delivery failures,
// inbound broker messages); the registry is the only shared state.
type Hub struct {
	mu          sync.RWMutex
	conns       map[*Conn]struct{}
	idleTimeout time.Duration
}

// NewHub creates a hub. idleTimeout bounds how long a connection may go
// without receiving a message; <= 0 falls back to 600 seconds.
func NewHub(idleTimeout time.Duration) *Hub {
	if idleTimeout <= 0 {
		idleTimeout = 600 * time.Second
	}
	return &Hub{
		conns:       make(map[*Conn]struct{}),
		idleTimeout: idleTimeout,
	}
}

// Subscribe registers a new connection. The registration is visible to
// Broadcast as soon as this returns.
func (h *Hub) Subscribe() *Conn {
	c := newConn()
	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()
	return c
}

// Remove closes a connection and drops it from the registry. Safe to call
// for a connection that was already removed.
func (h *Hub) Remove(c *Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
	c.Close()
}

// Broadcast delivers message to every connection registered when the call
// starts. A failed delivery evicts that one connection and never aborts
// delivery to the rest. With no connections it is a no-op.
func (h *Hub) Broadcast(message string) {
	h.mu.RLock()
	snapshot := make([]*Conn, 0, len(h.conns))
	for c := range h.conns {
		snapshot = append(snapshot, c)
	}
	h.mu.RUnlock()

	for _, c := range snapshot {
		if err := c.send(message); err != nil {
			h.Remove(c)
		}
	}
}

// Len returns the number of registered connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Stop closes and removes every connection.
func (h *Hub) Stop() {
	h.mu.Lock()
	conns := h.conns
	h.conns = make(map[*Conn]struct{})
	h.mu.Unlock()

	for c := range conns {
		c.Close()
	}
}
