package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"freestuff/pkg/logger"
)

const writeWait = 10 * time.Second

// Client is one connected subscriber. Writes go through the Send channel so
// only the write pump touches the connection.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager tracks active WebSocket clients.
type Manager struct {
	mutex   sync.RWMutex
	clients map[*Client]struct{}
}

func NewManager() *Manager {
	return &Manager{
		clients: make(map[*Client]struct{}),
	}
}

func (m *Manager) Register(client *Client) {
	m.mutex.Lock()
	m.clients[client] = struct{}{}
	m.mutex.Unlock()
	logger.Debug("WebSocket client registered: %s", client.UserID)
}

func (m *Manager) Unregister(client *Client) {
	m.mutex.Lock()
	if _, ok := m.clients[client]; ok {
		delete(m.clients, client)
		close(client.Send)
	}
	m.mutex.Unlock()
	logger.Debug("WebSocket client unregistered: %s", client.UserID)
}

// Push queues a JSON-encoded event for the client; the event is dropped if
// the client's buffer is full, since listener snapshots are self-correcting.
func (m *Manager) Push(client *Client, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Warn("Failed to encode WebSocket event: %v", err)
		return
	}

	m.mutex.RLock()
	_, ok := m.clients[client]
	m.mutex.RUnlock()
	if !ok {
		return
	}

	select {
	case client.Send <- payload:
	default:
	}
}

// WritePump drains the client's Send channel onto the connection. It returns
// when the channel is closed by Unregister.
func (c *Client) WritePump() {
	defer c.Conn.Close()
	for payload := range c.Send {
		c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
