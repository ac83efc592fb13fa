package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/taskhub/records-api/internal/core/domain"
)

// principalFrom extracts the claims injected by the Auth middleware. On
// public routes the claims are absent and the zero Principal is returned.
func principalFrom(c echo.Context) domain.Principal {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	return domain.Principal{UserID: userID, Role: role}
}
