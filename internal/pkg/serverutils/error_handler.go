package serverutils

import (
	"errors"

	"impes-be/internal/pkg/apperr"
	"impes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler renders every error returned by a handler as
// {message, error}. Internal causes are logged, never sent.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		status := apperr.HTTPStatus(err)
		kind := apperr.KindOf(err)
		message := err.Error()

		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			message = appErr.Message
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"kind":   string(kind),
				"error":  err,
			})
			if appErr == nil {
				message = "internal server error"
			}
		}

		return ctx.Status(status).JSON(ErrorBody{
			Message: message,
			Error:   string(kind),
		})
	}
}
