package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ai-screener/internal/apperrors"
)

// ErrorHandler translates orchestrator error kinds to HTTP status
// codes, preserving the original reason text.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		code := fiber.StatusInternalServerError
		switch appErr.Kind {
		case apperrors.KindValidation:
			code = fiber.StatusBadRequest
		case apperrors.KindNotFound:
			code = fiber.StatusNotFound
		case apperrors.KindConflict:
			code = fiber.StatusConflict
		case apperrors.KindUpstream:
			code = fiber.StatusBadGateway
		}
		return c.Status(code).JSON(fiber.Map{
			"error": appErr.Message,
			"code":  code,
		})
	}

	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
