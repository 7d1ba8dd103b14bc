package notification

import (
	"sync"

	"github.com/gorilla/websocket"
)

// client wraps one live connection with a write lock: the request-path
// fan-out and the reminder sweep can target the same recipient at the same
// time, and gorilla/websocket allows only one concurrent writer per
// connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub tracks one live websocket connection per user and pushes freshly
// created notifications to them.
type Hub struct {
	connections map[int64]*client
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*client),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.connections[userID]; exists && old != nil {
		_ = old.conn.Close()
	}

	h.connections[userID] = &client{conn: conn}
}

func (h *Hub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if cl, exists := h.connections[userID]; exists && cl != nil {
		_ = cl.conn.Close()
		delete(h.connections, userID)
	}
}

// SendToUser pushes a message if the user is connected; a write failure drops
// the connection.
func (h *Hub) SendToUser(userID int64, message interface{}) bool {
	h.mutex.RLock()
	cl, exists := h.connections[userID]
	h.mutex.RUnlock()

	if !exists || cl == nil {
		return false
	}

	if err := cl.writeJSON(message); err != nil {
		h.Unregister(userID)
		return false
	}

	return true
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.connections[userID]
	return exists
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, cl := range h.connections {
		if cl != nil {
			_ = cl.conn.Close()
		}
		delete(h.connections, userID)
	}
}
