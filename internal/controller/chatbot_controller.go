package controller

import (
	"linen-chatbot-be/internal/dto"
	"linen-chatbot-be/internal/pkg/serverutils"
	"linen-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
}

type chatbotController struct {
	chatbotService    service.IChatbotService
	escalationService service.IEscalationService
}

func NewChatbotController(chatbotService service.IChatbotService, escalationService service.IEscalationService) IChatbotController {
	return &chatbotController{
		chatbotService:    chatbotService,
		escalationService: escalationService,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chatbot/v1")
	h.Get("/quick-questions", c.QuickQuestions)
	h.Post("/ask", c.Ask)
	h.Get("/faqs", c.ListFAQs)
	h.Get("/faqs/categories", c.ListCategories)
	h.Get("/faqs/:id", c.GetFAQ)

	h.Post("/session", c.CreateSession)
	h.Get("/session/:id", c.GetSession)
	h.Delete("/session/:id", c.EndSession)
	h.Post("/session/:id/message", c.SendMessage)
	h.Post("/session/:id/escalate", c.Escalate)
}

// QuickQuestions returns the starter chips shown when the widget opens
// @Summary Get quick questions
// @Tags Chatbot
// @Produce json
// @Success 200 {object} dto.QuickQuestionsResponse
// @Router /api/chatbot/v1/quick-questions [get]
func (c *chatbotController) QuickQuestions(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Quick questions retrieved", c.chatbotService.QuickQuestions(ctx.Context())))
}

// Ask answers a single question without a session
// @Summary Ask the FAQ bot
// @Tags Chatbot
// @Accept json
// @Produce json
// @Param request body dto.AskRequest true "Question"
// @Success 200 {object} dto.AskResponse
// @Router /api/chatbot/v1/ask [post]
func (c *chatbotController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.Ask(ctx.UserContext(), &req)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Answer generated", res))
}

// ListFAQs lists the corpus, optionally one category
// @Summary List FAQ entries
// @Tags Chatbot
// @Produce json
// @Param category query string false "Category name"
// @Success 200 {object} []dto.FAQResponse
// @Router /api/chatbot/v1/faqs [get]
func (c *chatbotController) ListFAQs(ctx *fiber.Ctx) error {
	res, err := c.chatbotService.ListFAQs(ctx.UserContext(), ctx.Query("category"))
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("FAQs retrieved", res))
}

// ListCategories lists the corpus categories in display order
// @Summary List FAQ categories
// @Tags Chatbot
// @Produce json
// @Success 200 {object} dto.FAQCategoriesResponse
// @Router /api/chatbot/v1/faqs/categories [get]
func (c *chatbotController) ListCategories(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Categories retrieved", c.chatbotService.Categories(ctx.UserContext())))
}

func (c *chatbotController) GetFAQ(ctx *fiber.Ctx) error {
	res, err := c.chatbotService.GetFAQ(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("FAQ retrieved", res))
}

// CreateSession opens a chat session
// @Summary Create chat session
// @Tags Chatbot
// @Produce json
// @Success 201 {object} dto.ChatSessionResponse
// @Router /api/chatbot/v1/session [post]
func (c *chatbotController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.chatbotService.CreateSession(ctx.UserContext())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *chatbotController) GetSession(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatbotService.GetSession(ctx.UserContext(), id)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Session retrieved", res))
}

func (c *chatbotController) EndSession(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	if err := c.chatbotService.EndSession(ctx.UserContext(), id); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Session ended", nil))
}

// SendMessage posts a user message and waits for the bot reply
// @Summary Send chat message
// @Tags Chatbot
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SendMessageRequest true "Message"
// @Success 200 {object} dto.SendMessageResponse
// @Failure 409 {object} serverutils.Response "Reply still pending"
// @Router /api/chatbot/v1/session/{id}/message [post]
func (c *chatbotController) SendMessage(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.SendMessage(ctx.UserContext(), id, &req)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Message sent", res))
}

// Escalate hands the conversation to the support team
// @Summary Escalate to a human
// @Tags Chatbot
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.EscalateRequest true "Contact details"
// @Success 202 {object} dto.EscalateResponse
// @Router /api/chatbot/v1/session/{id}/escalate [post]
func (c *chatbotController) Escalate(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}

	var req dto.EscalateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.escalationService.Escalate(ctx.UserContext(), id, &req)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Escalation received", res))
}

func sessionID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}
	return id, nil
}
