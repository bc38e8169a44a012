package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fintrack/account-system/internal/api/handler"
	"github.com/fintrack/account-system/internal/api/middleware"
	"github.com/fintrack/account-system/internal/core/domain"
	"github.com/fintrack/account-system/internal/core/service"
	"github.com/fintrack/account-system/internal/core/token"
	"github.com/fintrack/account-system/internal/infrastructure/config"
	mongodb "github.com/fintrack/account-system/internal/infrastructure/db/mongo"
	redisdb "github.com/fintrack/account-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(client *mongo.Client, db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	txRunner := mongodb.NewTxRunner(client)
	denylist := redisdb.NewDenylist(rdb)
	codec := token.NewCodec(cfg.JWTSecret)

	authService := service.NewAuthService(accountRepo, auditRepo, denylist, txRunner, codec, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, log)
	moderationService := service.NewModerationService(accountRepo, auditRepo, txRunner, log)
	auditService := service.NewAuditService(auditRepo)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(moderationService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Every request gets its identity resolved; routes decide what an
	// anonymous request may do.
	e.Use(middleware.Identity(codec, log))

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.PUT("/auth/password", authHandler.ChangePassword, middleware.RequireRole(domain.RoleUser))

	// --- Moderation routes ---
	admin := e.Group("/admin")
	admin.POST("/accounts", adminHandler.Create, middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/accounts/:email/ban", adminHandler.Ban, middleware.RequireRole(domain.RoleModerator))
	admin.POST("/accounts/:email/unban", adminHandler.Unban, middleware.RequireRole(domain.RoleModerator))
	admin.PUT("/accounts/:email/role", adminHandler.ChangeRole, middleware.RequireRole(domain.RoleAdmin))
	admin.DELETE("/accounts/:email", adminHandler.Delete, middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/audit", auditHandler.List, middleware.RequireRole(domain.RoleAdmin))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
