package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrNotFound marks lookup failures that should map to 404.
var ErrNotFound = errors.New("not found")

// ErrorHandlerMiddleware converts service errors to JSON envelopes at
// the request boundary. Nothing propagates past here; a failed request
// never takes the process down.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		} else if errors.Is(err, ErrNotFound) {
			status = fiber.StatusNotFound
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			status = fiber.StatusBadRequest
		}

		return ctx.Status(status).JSON(ErrorResponse(err.Error()))
	}
}
