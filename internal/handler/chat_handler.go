package handler

import (
	"linen-chatbot-be/internal/pkg/logger"
	"linen-chatbot-be/internal/pkg/serverutils"
	"linen-chatbot-be/internal/service"
	internalWS "linen-chatbot-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ChatHandler upgrades chat sessions to websockets.
type ChatHandler struct {
	chat   service.IChatbotService
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewChatHandler(chat service.IChatbotService, hub *internalWS.Hub, log logger.ILogger) *ChatHandler {
	return &ChatHandler{
		chat:   chat,
		hub:    hub,
		logger: log,
	}
}

// Upgrade rejects non-websocket requests and unknown sessions before the handshake.
func (h *ChatHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid session id"))
	}
	if _, err := h.chat.GetSession(c.UserContext(), id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, err.Error()))
	}

	c.Locals("session_id", id)
	return c.Next()
}

func (h *ChatHandler) ServeWs(c *websocket.Conn) {
	id, _ := c.Locals("session_id").(uuid.UUID)
	h.logger.Info("ChatHandler", "Chat socket opened", map[string]interface{}{"session_id": id.String()})
	internalWS.ServeChat(h.hub, c, id, h.chat, h.logger)
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/chatbot/v1/ws/:id", h.Upgrade, websocket.New(h.ServeWs))
}
