package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/lumaworks/studio-crm/docs"
	"github.com/lumaworks/studio-crm/internal/api/handler"
	"github.com/lumaworks/studio-crm/internal/api/middleware"
	"github.com/lumaworks/studio-crm/internal/core/domain"
	"github.com/lumaworks/studio-crm/internal/core/service"
	"github.com/lumaworks/studio-crm/internal/infrastructure/config"
	mongoinfra "github.com/lumaworks/studio-crm/internal/infrastructure/db/mongo"
	redisinfra "github.com/lumaworks/studio-crm/internal/infrastructure/db/redis"
	httphandlers "github.com/lumaworks/studio-crm/internal/infrastructure/http/handlers"
	"github.com/lumaworks/studio-crm/internal/infrastructure/oauth"
)

// AuditRecorder is the audit pipeline as the API sees it: fire-and-forget.
type AuditRecorder interface {
	handler.AuditRecorder
}

// NewRouter builds and returns the Echo instance with all routes registered.
// discovery may be nil when no OAuth issuer is configured.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit AuditRecorder, discovery *oauth.DiscoveryCache, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("studiocrm"))

	// --- Dependencies ---
	userRepo := mongoinfra.NewUserRepository(db)
	photographerRepo := redisinfra.NewTenantCache(rdb, mongoinfra.NewPhotographerRepository(db), log)
	galleryRepo := mongoinfra.NewGalleryRepository(db)
	auditRepo := mongoinfra.NewAuditRepository(db)

	tokenService := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, cfg.Auth.BcryptCost)
	authService := service.NewAuthService(userRepo, photographerRepo, tokenService, log)
	impersonationService := service.NewImpersonationService(photographerRepo, tokenService, log)
	galleryService := service.NewGalleryService(galleryRepo, log)

	cookieOpts := handler.CookieOptions{
		Name:   cfg.Auth.CookieName,
		TTL:    cfg.Auth.SessionTTL,
		Secure: cfg.IsProduction(),
	}

	authHandler := handler.NewAuthHandler(authService, cookieOpts, audit)
	adminHandler := handler.NewAdminHandler(impersonationService, auditRepo, cookieOpts, audit)
	galleryHandler := handler.NewGalleryHandler(galleryService)

	authenticate := middleware.Authenticate(tokenService, cfg.Auth.CookieName)
	gates := middleware.NewFeatureGates(photographerRepo, audit)

	// --- Auth routes ---
	// Anonymous register only opens photographer accounts; the authenticated
	// /v1/clients route reuses the same handler for tenant-scoped client creation.
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/logout", authHandler.Logout)
	e.GET("/v1/auth/me", authHandler.Me, authenticate)
	e.POST("/v1/clients", authHandler.Register, authenticate, middleware.RequirePhotographer())

	if discovery != nil {
		discoveryHandler := handler.NewDiscoveryHandler(discovery)
		e.GET("/v1/auth/oauth/config", discoveryHandler.Config)
	}

	// --- Admin routes ---
	admin := e.Group("/v1/admin", authenticate, middleware.RequireAdmin())
	admin.POST("/impersonate", adminHandler.Impersonate)
	admin.POST("/impersonate/exit", adminHandler.ExitImpersonation)
	admin.GET("/audit", adminHandler.ListAudit)

	// --- Gallery routes (feature-gated) ---
	galleries := e.Group("/v1/galleries",
		authenticate,
		middleware.RequireRole(domain.RolePhotographer, domain.RoleClient),
		gates.RequireActiveSubscription(),
		gates.RequireGalleryPlan(),
	)
	galleries.GET("", galleryHandler.List)
	galleries.GET("/:id", galleryHandler.Get)
	galleries.POST("", galleryHandler.Create, middleware.RequirePhotographer())
	galleries.POST("/:id/status", galleryHandler.Transition, middleware.RequirePhotographer())

	// --- Operational endpoints ---
	healthHandler := httphandlers.NewHealthHandler()
	healthDepsHandler := httphandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
