package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskhub/records-api/internal/core/domain"
)

// errorEnvelope mirrors the success envelope shape for failures: exactly one
// of Error or Errors is set.
type errorEnvelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Error   string              `json:"error,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain error taxonomy to deterministic HTTP status codes.
//   - Renders validation failures with the full field-error list.
//   - Logs unexpected errors internally; their detail reaches the client
//     only in development mode.
func NewHTTPErrorHandler(log zerolog.Logger, env string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, env, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, env string, log zerolog.Logger, c echo.Context) (int, errorEnvelope) {
	// Validation failures carry every failing field.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorEnvelope{
			Message: "Validation failed",
			Errors:  ve.Fields,
		}
	}

	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorEnvelope{
			Message: http.StatusText(he.Code),
			Error:   fmt.Sprintf("%v", he.Message),
		}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorEnvelope{
			Message: "Resource not found",
			Error:   err.Error(),
		}
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, errorEnvelope{
			Message: "Conflict",
			Error:   err.Error(),
		}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorEnvelope{
			Message: "Access denied",
			Error:   "Not authorized",
		}
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorEnvelope{
			Message: "Authentication failed",
			Error:   "invalid credentials",
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	detail := "Something went wrong"
	if env == "development" {
		detail = err.Error()
	}
	return http.StatusInternalServerError, errorEnvelope{
		Message: "Internal server error",
		Error:   detail,
	}
}
