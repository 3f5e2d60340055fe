package notification

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

type client struct {
	conn Conn
	mu   sync.Mutex // websocket writers must not run concurrently
}

// Hub keeps the latest live connection of each signed-in profile.
type Hub struct {
	connections map[string]*client
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*client),
	}
}

// Register replaces any previous connection of the same profile.
func (h *Hub) Register(userID string, conn Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.connections[userID]; exists && old.conn != nil {
		_ = old.conn.Close()
	}

	h.connections[userID] = &client{conn: conn}
}

// Unregister drops conn if it is still the profile's current connection.
func (h *Hub) Unregister(userID string, conn Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if c, exists := h.connections[userID]; exists && c.conn == conn {
		_ = c.conn.Close()
		delete(h.connections, userID)
	}
}

// SendToUser reports whether the message reached a live connection.
func (h *Hub) SendToUser(userID string, message any) bool {
	h.mutex.RLock()
	c, exists := h.connections[userID]
	h.mutex.RUnlock()

	if !exists {
		return false
	}

	c.mu.Lock()
	err := c.conn.WriteJSON(message)
	c.mu.Unlock()
	if err != nil {
		h.Unregister(userID, c.conn)
		return false
	}

	return true
}

func (h *Hub) IsOnline(userID string) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.connections[userID]
	return exists
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

// Close drops every connection; used on shutdown.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, c := range h.connections {
		_ = c.conn.Close()
		delete(h.connections, userID)
	}
}

var _ Conn = (*websocket.Conn)(nil)
