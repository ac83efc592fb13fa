package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/records-api/internal/core/domain"
	"github.com/taskhub/records-api/internal/core/resource"
	"github.com/taskhub/records-api/internal/core/service"
)

// AuthHandler handles registration and login. Registration runs through the
// same validated user pipeline as POST /api/users.
type AuthHandler struct {
	users *resource.Service[*domain.User]
	auth  *service.AuthService
}

func NewAuthHandler(users *resource.Service[*domain.User], auth *service.AuthService) *AuthHandler {
	return &AuthHandler{users: users, auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      userRequest  true  "User registration details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      409   {object}  envelope
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := userFromRequest(&req)
	if err != nil {
		return err
	}

	created, err := h.users.Create(c.Request().Context(), user, domain.Principal{})
	if err != nil {
		return err
	}
	return respondCreated(c, "User registered successfully", echo.Map{"user": created})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return respondOK(c, "Login successful", echo.Map{"token": token, "user": user})
}
