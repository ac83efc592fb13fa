package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/taskhub/records-api/docs"
	"github.com/taskhub/records-api/internal/api/handler"
	"github.com/taskhub/records-api/internal/api/middleware"
	"github.com/taskhub/records-api/internal/core/domain"
)

// resourceRoutes is the uniform CRUD surface every pipeline handler exposes.
type resourceRoutes interface {
	List(echo.Context) error
	Get(echo.Context) error
	Create(echo.Context) error
	Update(echo.Context) error
	Delete(echo.Context) error
}

// Dependencies carries everything the router needs, fully constructed.
// Wiring happens in main; the router only registers routes.
type Dependencies struct {
	Logger    zerolog.Logger
	Env       string
	JWTSecret string

	Contacts resourceRoutes
	Posts    resourceRoutes
	Comments resourceRoutes
	Users    resourceRoutes

	Auth     *handler.AuthHandler
	Activity *handler.ActivityHandler
	Health   *handler.HealthHandler
	Ready    *handler.ReadinessHandler
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger, deps.Env)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("records"))

	// --- Operational endpoints (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/health", deps.Health.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", deps.Ready.Readiness)     // readiness – are dependencies up?

	// --- Auth routes ---
	e.POST("/auth/register", deps.Auth.Register)
	e.POST("/auth/login", deps.Auth.Login)

	auth := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Owned resources: every operation requires a valid token ---
	mountResource(e.Group("/api/contacts", auth), deps.Contacts)
	mountResource(e.Group("/api/posts", auth), deps.Posts)
	mountResource(e.Group("/api/comments", auth), deps.Comments)

	// --- Users: public directory, protected mutations, admin-only delete ---
	users := e.Group("/api/users")
	users.GET("", deps.Users.List)
	users.GET("/:id", deps.Users.Get)
	users.POST("", deps.Users.Create)
	users.PUT("/:id", deps.Users.Update, auth)
	users.DELETE("/:id", deps.Users.Delete, auth, adminOnly)

	// --- Activity audit trail (admin only) ---
	e.GET("/api/activity", deps.Activity.List, auth, adminOnly)

	return e
}

func mountResource(g *echo.Group, h resourceRoutes) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
