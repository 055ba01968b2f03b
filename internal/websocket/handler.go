package websocket

import (
	"context"

	"linen-chatbot-be/internal/pkg/logger"
	"linen-chatbot-be/internal/service"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeChat runs a chat socket for one session until the peer disconnects.
func ServeChat(hub *Hub, c *websocket.Conn, sessionID uuid.UUID, chat service.IChatbotService, log logger.ILogger) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &Client{
		Hub:       hub,
		Conn:      c,
		SessionID: sessionID,
		Send:      make(chan []byte, 64),
		chat:      chat,
		logger:    log,
		ctx:       ctx,
		cancel:    cancel,
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // blocks; fiber closes the conn when the handler returns
}
