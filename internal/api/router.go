// Package api wires the Echo application: routes, middleware chain, template
// renderer, form validator, and the page-rendering error handler.
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/societyhub/dashboard/internal/api/handler"
	"github.com/societyhub/dashboard/internal/api/middleware"
	"github.com/societyhub/dashboard/internal/api/view"
	"github.com/societyhub/dashboard/internal/core/domain"
	"github.com/societyhub/dashboard/internal/core/ports"
	"github.com/societyhub/dashboard/internal/infrastructure/upstream"
)

// Deps carries everything the router needs. Redis may be nil when sessions
// are held in memory.
type Deps struct {
	Sessions   ports.SessionService
	Community  ports.CommunityService
	API        *upstream.Client
	Redis      *redis.Client
	SessionTTL time.Duration
	Log        zerolog.Logger

	// Registerer receives the HTTP metrics. Defaults to the process-wide
	// registry; tests supply their own so routers can be built repeatedly.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = view.NewRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "dashboard",
		Registerer: registerer,
	}))
	e.Use(middleware.Restore(deps.Sessions))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.API, deps.SessionTTL, deps.Log)
	dashboardHandler := handler.NewDashboardHandler(deps.Community, deps.Log)
	societyHandler := handler.NewSocietyHandler(deps.Community)
	userHandler := handler.NewUserHandler(deps.Community)
	settingsHandler := handler.NewSettingsHandler(deps.Sessions)

	// --- Anonymous pages ---
	e.GET("/", func(c echo.Context) error {
		if middleware.Session(c) != nil {
			return c.Redirect(http.StatusFound, middleware.DashboardPath)
		}
		return c.Redirect(http.StatusFound, middleware.LoginPath)
	})
	e.GET(middleware.LoginPath, authHandler.ShowLogin)
	e.POST(middleware.LoginPath, authHandler.Login)
	e.GET("/signup", authHandler.ShowSignup)
	e.POST("/signup", authHandler.Signup)
	e.GET("/forgot-password", authHandler.ShowForgotPassword)
	e.POST("/forgot-password", authHandler.ForgotPassword)
	e.GET("/reset-password", authHandler.ShowResetPassword)
	e.POST("/reset-password", authHandler.ResetPassword)
	e.POST("/logout", authHandler.Logout)

	// --- Guarded pages ---
	guarded := e.Group("", middleware.Guard(deps.Sessions))
	guarded.GET(middleware.DashboardPath, dashboardHandler.Dashboard)
	guarded.GET(middleware.PendingApprovalPath, authHandler.PendingApproval)

	guarded.GET("/societies", societyHandler.List)
	guarded.GET("/societies/new", societyHandler.New)
	guarded.POST("/societies", societyHandler.Create)
	guarded.GET("/societies/:id", societyHandler.Detail)
	guarded.POST("/societies/:id/approve", societyHandler.Approve,
		middleware.RequireRoles(domain.RoleDeveloper))
	guarded.POST("/societies/:id/members/:membershipID", societyHandler.DecideMembership)

	guarded.GET("/settings", settingsHandler.Show)
	guarded.POST("/settings/theme", settingsHandler.UpdateTheme)
	guarded.POST("/change-password", settingsHandler.ChangePassword)

	users := guarded.Group("/users", middleware.RequireRoles(domain.RoleDeveloper, domain.RoleAdmin))
	users.GET("", userHandler.List)
	users.GET("/:id/edit", userHandler.Edit)
	users.POST("/:id", userHandler.Update)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.API, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
