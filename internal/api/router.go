package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/backendgym/admin-auth-api/internal/api/handler"
	"github.com/backendgym/admin-auth-api/internal/api/middleware"
	"github.com/backendgym/admin-auth-api/internal/core/domain"
	"github.com/backendgym/admin-auth-api/internal/core/service"
	"github.com/backendgym/admin-auth-api/internal/infrastructure/config"
	mongodb "github.com/backendgym/admin-auth-api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Dependencies are constructed once here and handed to the handlers by
// reference; there is no other wiring layer.
func NewRouter(db *mongo.Database, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("auth_http"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	issuer, err := service.NewTokenIssuer(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiration,
		cfg.JWT.RefreshExpiration,
	)
	if err != nil {
		return nil, err
	}
	authService := service.NewAuthService(userRepo, issuer, log)
	authHandler := handler.NewAuthHandler(authService)

	accessGuard := middleware.Auth(cfg.JWT.AccessSecret)
	refreshGuard := middleware.RefreshGuard(cfg.JWT.RefreshSecret, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleSuperAdmin)

	// --- Auth routes ---
	e.POST("/auth/admin/login", authHandler.AdminLogin)
	e.POST("/auth/refresh", authHandler.Refresh, refreshGuard)
	e.POST("/auth/logout", authHandler.Logout, accessGuard, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is MongoDB reachable?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
