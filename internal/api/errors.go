package api

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"

	"taskboard/internal/errors"
)

// StatusCode maps an error to its HTTP status.
func StatusCode(err error) int {
	var fe *fiber.Error
	if stderrors.As(err, &fe) {
		return fe.Code
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch appErr.Type {
	case errors.ErrorTypeValidation:
		return fiber.StatusBadRequest
	case errors.ErrorTypeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// handleError is the fiber error handler. Only the user message of an error
// reaches the response body; store and internal failures are logged with
// their cause.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if stderrors.As(err, &fe) {
		return c.Status(fe.Code).JSON(ErrorResponse{Error: fe.Message})
	}

	if errors.ShouldLogError(err) {
		fields := []interface{}{"method", c.Method(), "path", c.Path()}
		if appErr, ok := errors.AsAppError(err); ok {
			fields = append(fields, appErr.LogFields()...)
		} else {
			fields = append(fields, "err", err)
		}
		s.logger.Error("request failed", fields...)
	}

	return c.Status(StatusCode(err)).JSON(ErrorResponse{Error: errors.GetUserMessage(err)})
}
