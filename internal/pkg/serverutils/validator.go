package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest checks struct tags and turns the first failure into a 400.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s is required", field))
	case "email":
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s must be a valid email", field))
	case "max":
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
	default:
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s is invalid", field))
	}
}
