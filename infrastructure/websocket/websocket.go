package websocket

import (
	"sync"
	"time"

	"github.com/pinkcat015/todolist/domain/ports"
	"github.com/pinkcat015/todolist/pkg/logger"
)

const (
	// writeWait bounds a single frame write to a stalled peer.
	writeWait = 5 * time.Second
	// sendBuffer is how many events a socket may fall behind before new ones are dropped.
	sendBuffer = 32
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v any) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// client owns the only goroutine that writes to its socket. Broadcasts never wait on it.
type client struct {
	conn   Conn
	userID int64
	send   chan Message
	done   chan struct{}
}

func newClient(conn Conn, userID int64) *client {
	return &client{
		conn:   conn,
		userID: userID,
		send:   make(chan Message, sendBuffer),
		done:   make(chan struct{}),
	}
}

func (c *client) write(msg Message) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// enqueue reports false when the socket is too far behind to take msg.
func (c *client) enqueue(msg Message) bool {
	select {
	case <-c.done:
		return true
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (h *ActivityHub) writePump(c *client) {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.write(msg); err != nil {
				logger.Warn("WebSocket write failed, dropping client", "user_id", c.userID, "error", err)
				h.Unregister(c.conn, c.userID)
				return
			}
		}
	}
}

// ActivityHub relays each user's activity events to all of that user's open sockets.
// The user's activity subscription lives while at least one socket is open.
type ActivityHub struct {
	subscriber ports.ActivitySubscriberPort

	mu      sync.Mutex
	clients map[int64]map[Conn]*client
	cancels map[int64]func()
}

func NewActivityHub(subscriber ports.ActivitySubscriberPort) *ActivityHub {
	return &ActivityHub{
		subscriber: subscriber,
		clients:    make(map[int64]map[Conn]*client),
		cancels:    make(map[int64]func()),
	}
}

func (h *ActivityHub) Register(conn Conn, userID int64) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, subscribed := h.cancels[userID]; !subscribed {
		cancel, err := h.subscriber.SubscribeUser(userID, func(event *ports.ActivityEvent) {
			h.BroadcastToUser(userID, event.Type, event)
		})
		if err != nil {
			return err
		}
		h.cancels[userID] = cancel
	}

	if h.clients[userID] == nil {
		h.clients[userID] = make(map[Conn]*client)
	}
	if _, ok := h.clients[userID][conn]; ok {
		return nil
	}
	c := newClient(conn, userID)
	h.clients[userID][conn] = c
	go h.writePump(c)

	logger.Info("WebSocket client connected", "user_id", userID, "connections", len(h.clients[userID]))
	return nil
}

func (h *ActivityHub) Unregister(conn Conn, userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(conn, userID)
}

func (h *ActivityHub) removeLocked(conn Conn, userID int64) {
	conns, ok := h.clients[userID]
	if !ok {
		return
	}
	c, ok := conns[conn]
	if !ok {
		return
	}

	delete(conns, conn)
	close(c.done)
	_ = conn.Close()

	if len(conns) == 0 {
		delete(h.clients, userID)
		if cancel, ok := h.cancels[userID]; ok {
			cancel()
			delete(h.cancels, userID)
		}
	}
	logger.Info("WebSocket client disconnected", "user_id", userID)
}

// BroadcastToUser queues the event on every socket of userID without blocking.
// A socket whose queue is full misses the event; one whose write fails is dropped.
func (h *ActivityHub) BroadcastToUser(userID int64, messageType string, data any) {
	h.mu.Lock()
	targets := make([]*client, 0, len(h.clients[userID]))
	for _, c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	msg := Message{Type: messageType, Data: data}
	for _, c := range targets {
		if !c.enqueue(msg) {
			logger.Warn("WebSocket client too slow, dropping event", "user_id", userID, "type", messageType)
		}
	}
}

func (h *ActivityHub) ConnectionCount(userID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

// Close drops every socket and subscription.
func (h *ActivityHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, conns := range h.clients {
		for conn := range conns {
			h.removeLocked(conn, userID)
		}
	}
}
