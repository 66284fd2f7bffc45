package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/vidyodaya/vidyodaya-api/internal/service"
)

// ErrNilACD is returned by Init when app, cfg or db is nil.
var ErrNilACD = errors.New(ErrNilACDFatalLogMsg)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// StatusCode maps err to the HTTP status reported to the client.
func StatusCode(err error) int {
	var fe *fiber.Error

	switch {
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrValidation):
		return fiber.StatusBadRequest
	case errors.As(err, &fe):
		return fe.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is the fiber error handler of the API. Server side failures
// are logged and reported without their details.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusCode(err)
	message := err.Error()

	if code >= fiber.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request-id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request failed")

		message = fiber.ErrInternalServerError.Message
	}

	return c.Status(code).JSON(ErrorResponse{Error: true, Message: message})
}
