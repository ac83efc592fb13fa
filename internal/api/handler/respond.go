package handler

import (
	"net/http"
	"unicode"

	"github.com/labstack/echo/v4"
)

// envelope is the uniform wrapper for successful responses. Error responses
// carry the matching shape via the central HTTP error handler.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondOK(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func respondCreated(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

// titled upper-cases the first rune for response messages ("contact" →
// "Contact").
func titled(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
