package controller

import (
	"errors"

	"linen-chatbot-be/internal/pkg/serverutils"
	"linen-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errorStatus maps service errors to HTTP statuses.
func errorStatus(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, service.ErrEmptyMessage):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrFAQNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrSessionBusy):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrStoreUnavailable), errors.Is(err, service.ErrEscalationUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func writeError(ctx *fiber.Ctx, err error) error {
	code := errorStatus(err)
	message := err.Error()
	if code == fiber.StatusInternalServerError {
		message = "Internal server error"
	}
	return ctx.Status(code).JSON(serverutils.ErrorResponse(code, message))
}
