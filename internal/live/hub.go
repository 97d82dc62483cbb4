// Package live streams interview engine events to WebSocket clients.
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/ashureev/interview-labs/internal/domain"
	"github.com/coder/websocket"
)

const (
	writeTimeout = 5 * time.Second
	sendBuffer   = 16
)

// Event types sent to clients.
const (
	EventSnapshot = "snapshot"
	EventFinished = "finished"
	EventIdle     = "idle"
)

// Message is the JSON envelope written to clients.
type Message struct {
	Type     string           `json:"type"`
	Snapshot *domain.Snapshot `json:"snapshot,omitempty"`
	Result   *domain.Result   `json:"result,omitempty"`
}

// Conn is the part of a WebSocket connection the hub writes to.
// *websocket.Conn satisfies it.
type Conn interface {
	Write(ctx context.Context, typ websocket.MessageType, p []byte) error
	Close(code websocket.StatusCode, reason string) error
}

// client owns one viewer's outbound queue. Only its writer goroutine
// writes to conn.
type client struct {
	conn Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *client) stop() {
	c.once.Do(func() { close(c.done) })
}

// Hub tracks connected viewers and broadcasts engine events to them.
// It implements interview.Notifier. Broadcasts never wait on a viewer:
// each viewer has a bounded queue, and one that falls behind is dropped.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
	}
}

// Register adds a connection under id and starts its writer. first, if
// non-nil, is queued ahead of any broadcast. A connection already registered
// under id is closed.
func (h *Hub) Register(id string, conn Conn, first []byte) {
	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	if first != nil {
		c.send <- first
	}

	h.mu.Lock()
	existing := h.clients[id]
	h.clients[id] = c
	n := len(h.clients)
	h.mu.Unlock()

	if existing != nil {
		existing.stop()
		go closeConn(existing.conn, websocket.StatusNormalClosure, "viewer replaced")
	}
	go h.writeLoop(id, c)
	slog.Info("Viewer registered", "viewer_id", id, "viewers", n)
}

// Unregister removes the connection for id if it is still the current one.
// The caller keeps ownership of conn.
func (h *Hub) Unregister(id string, conn Conn) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok && c.conn == conn {
		delete(h.clients, id)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if ok && c.conn == conn {
		c.stop()
		slog.Info("Viewer unregistered", "viewer_id", id, "viewers", n)
	}
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// OnSnapshot broadcasts a session snapshot.
func (h *Hub) OnSnapshot(s domain.Snapshot) {
	h.broadcast(Message{Type: EventSnapshot, Snapshot: &s})
}

// OnFinish broadcasts the result of a finished session.
func (h *Hub) OnFinish(r domain.Result) {
	h.broadcast(Message{Type: EventFinished, Result: &r})
}

func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("Failed to encode live message", "type", msg.Type, "error", err)
		return
	}

	type viewer struct {
		id string
		c  *client
	}
	var slow []viewer

	h.mu.RLock()
	for id, c := range h.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, viewer{id, c})
		}
	}
	h.mu.RUnlock()

	for _, v := range slow {
		h.drop(v.id, v.c, "viewer too slow")
	}
}

// drop removes c and closes its connection, which ends the viewer's handler.
func (h *Hub) drop(id string, c *client, reason string) {
	h.mu.Lock()
	if h.clients[id] == c {
		delete(h.clients, id)
	}
	h.mu.Unlock()

	c.stop()
	slog.Warn("Dropping viewer", "viewer_id", id, "reason", reason)
	go closeConn(c.conn, websocket.StatusPolicyViolation, reason)
}

func (h *Hub) writeLoop(id string, c *client) {
	for {
		select {
		case data := <-c.send:
			if err := write(c.conn, data); err != nil {
				slog.Debug("Failed to write to viewer", "viewer_id", id, "error", err)
				h.drop(id, c, "write failed")
				return
			}
		case <-c.done:
			return
		}
	}
}

func write(conn Conn, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}

func closeConn(conn Conn, code websocket.StatusCode, reason string) {
	if err := conn.Close(code, reason); err != nil {
		slog.Debug("Failed to close viewer", "error", err)
	}
}
