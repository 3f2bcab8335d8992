package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"exportdocs/internal/http/middleware"
	"exportdocs/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_INPUT", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError translates a service error into the error payload.
// Client-caused errors carry their message; anything unclassified is
// reported as INTERNAL_ERROR without details.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrConflict):
		return writeError(c, fiber.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, service.ErrTemplateInvalid):
		return writeError(c, fiber.StatusUnprocessableEntity, "TEMPLATE_INVALID", err.Error())
	case errors.Is(err, service.ErrUnreadableDocument):
		return writeError(c, fiber.StatusUnprocessableEntity, "DOCUMENT_UNREADABLE", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
