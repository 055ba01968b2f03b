package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"linen-chatbot-be/internal/constant"
	"linen-chatbot-be/internal/dto"
	"linen-chatbot-be/internal/pkg/logger"
	"linen-chatbot-be/internal/pkg/serverutils"
	"linen-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	SessionID uuid.UUID

	// Buffered channel of outbound frames.
	Send chan []byte

	chat   service.IChatbotService
	logger logger.ILogger

	// cancelled when the socket closes; aborts a pending reply
	ctx    context.Context
	cancel context.CancelFunc
}

// readPump turns incoming frames into chat messages until the peer goes away.
func (c *Client) readPump() {
	defer func() {
		c.cancel()
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("ChatSocket", "Unexpected close", map[string]interface{}{"session_id": c.SessionID.String(), "error": err.Error()})
			}
			return
		}

		var req dto.ChatSocketRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			c.Hub.SendTo(c, errorFrame("Invalid frame"))
			continue
		}
		go c.handle(req)
	}
}

// handle runs one exchange. The reply is broadcast to every tab; errors only go back to the sender.
func (c *Client) handle(req dto.ChatSocketRequest) {
	msg := dto.SendMessageRequest{Text: req.Text}
	if err := serverutils.ValidateRequest(msg); err != nil {
		c.Hub.SendTo(c, errorFrame(socketErrorMessage(err)))
		return
	}

	typing, _ := json.Marshal(dto.ChatSocketFrame{Type: constant.ChatFrameTyping})
	c.Hub.Broadcast(c.SessionID, typing)

	res, err := c.chat.SendMessage(c.ctx, c.SessionID, &msg)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		c.Hub.SendTo(c, errorFrame(socketErrorMessage(err)))
		return
	}

	frame, _ := json.Marshal(dto.ChatSocketFrame{Type: constant.ChatFrameMessage, Data: res})
	c.Hub.Broadcast(c.SessionID, frame)
}

// writePump pumps frames from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func errorFrame(message string) []byte {
	data, _ := json.Marshal(dto.ChatSocketFrame{Type: constant.ChatFrameError, Message: message})
	return data
}

func socketErrorMessage(err error) string {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Message
	case errors.Is(err, service.ErrSessionBusy),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrSessionNotFound):
		return err.Error()
	default:
		return "Something went wrong, please try again"
	}
}
