package websocket

import (
	"sync"

	"linen-chatbot-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Hub tracks open chat sockets per session. A session open in two tabs gets every frame in both.
type Hub struct {
	// SessionID -> connected clients
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID.String()})

		case client := <-h.unregister:
			h.mu.Lock()
			clients := h.clients[client.SessionID]
			for i, c := range clients {
				if c == client {
					h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
					close(client.Send)
					break
				}
			}
			if len(h.clients[client.SessionID]) == 0 {
				delete(h.clients, client.SessionID)
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"session_id": client.SessionID.String()})
		}
	}
}

// Broadcast queues data for every socket of the session.
func (h *Hub) Broadcast(sessionID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients[sessionID] {
		h.enqueue(client, data)
	}
}

// SendTo queues data for one socket if it is still registered.
func (h *Hub) SendTo(client *Client, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients[client.SessionID] {
		if c == client {
			h.enqueue(c, data)
			return
		}
	}
}

// connections returns the number of open sockets for the session.
func (h *Hub) connections(sessionID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// enqueue must run under h.mu; Send is only closed with the write lock held.
func (h *Hub) enqueue(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		h.logger.Warn("Hub", "Client Send buffer full, dropping frame", map[string]interface{}{"session_id": client.SessionID.String()})
	}
}
