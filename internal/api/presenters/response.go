package presenters

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"Go-Recipe-Chat/domain"
)

type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data interface{}, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(statusCode).JSON(res)
}

// FailResponse answers with the status that matches err's kind. Errors
// without a known kind are returned to fiber's ErrorHandler, which logs them
// and answers 500.
func FailResponse(c *fiber.Ctx, message string, err error) error {
	status := StatusCode(err)
	if status == fiber.StatusInternalServerError {
		return fmt.Errorf("%s: %w", message, err)
	}
	return ErrorResponse(c, status, message, err)
}

// StatusCode maps a domain or validation error to an HTTP status.
func StatusCode(err error) int {
	var (
		validationErrs validator.ValidationErrors
		fiberErr       *fiber.Error
	)
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument), errors.As(err, &validationErrs):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}
