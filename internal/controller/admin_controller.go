package controller

import (
	"linen-chatbot-be/internal/dto"
	"linen-chatbot-be/internal/pkg/serverutils"
	"linen-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
}

type adminController struct {
	service   service.IAdminService
	jwtSecret string
}

func NewAdminController(service service.IAdminService, jwtSecret string) IAdminController {
	return &adminController{
		service:   service,
		jwtSecret: jwtSecret,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Post("/login", c.Login)

	protected := h.Group("/chatbot", serverutils.JwtMiddleware(c.jwtSecret), serverutils.RequireRole(service.AdminRole))
	protected.Get("/interactions", c.ListInteractions)
	protected.Get("/outcomes", c.OutcomeCounts)
	protected.Get("/top-questions", c.TopQuestions)
}

func (c *adminController) Login(ctx *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

// ListInteractions pages through logged bot replies, newest first
// @Summary List chat interactions
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param outcome query string false "greeting, contact, order_status, faq or default"
// @Param limit query int false "Page size, max 200"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.InteractionListResponse
// @Router /api/admin/chatbot/interactions [get]
func (c *adminController) ListInteractions(ctx *fiber.Ctx) error {
	var req dto.InteractionListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}

	res, err := c.service.ListInteractions(ctx.UserContext(), &req)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Interactions retrieved", res))
}

func (c *adminController) OutcomeCounts(ctx *fiber.Ctx) error {
	res, err := c.service.OutcomeCounts(ctx.UserContext())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Outcome counts retrieved", res))
}

func (c *adminController) TopQuestions(ctx *fiber.Ctx) error {
	res, err := c.service.TopQuestions(ctx.UserContext(), ctx.QueryInt("limit", 0))
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Top questions retrieved", res))
}
