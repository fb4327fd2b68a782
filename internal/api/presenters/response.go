package presenters

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Univearth/ai-hackathon/domain"
)

// ErrorResponse renders an error with an explicit status code.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	response := fiber.Map{"error": message}
	if err != nil {
		response["details"] = err.Error()
	}
	return c.Status(status).JSON(response)
}

// Error renders an error with the status implied by its sentinel.
func Error(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, statusFor(err), message, err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotImage),
		errors.Is(err, domain.ErrNoProducts),
		errors.Is(err, domain.ErrInvalidSignature):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrObjectNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
