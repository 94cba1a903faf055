// Command api runs the studio CRM HTTP server.
//
//	@title        Studio CRM API
//	@version      1.0
//	@description  Authentication, authorization, and gallery management for photography studios.
//	@BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumaworks/studio-crm/internal/api"
	"github.com/lumaworks/studio-crm/internal/core/service"
	"github.com/lumaworks/studio-crm/internal/infrastructure/config"
	mongoinfra "github.com/lumaworks/studio-crm/internal/infrastructure/db/mongo"
	redisinfra "github.com/lumaworks/studio-crm/internal/infrastructure/db/redis"
	"github.com/lumaworks/studio-crm/internal/infrastructure/oauth"
	"github.com/lumaworks/studio-crm/internal/infrastructure/queue"
	"github.com/lumaworks/studio-crm/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	if cfg.Auth.JWTSecret == "" {
		if cfg.IsProduction() {
			log.Fatal().Msg("JWT_SECRET must be set in production")
		}
		log.Warn().Msg("JWT_SECRET not set, using an insecure development secret")
		cfg.Auth.JWTSecret = "dev-only-secret"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	client, db, err := mongoinfra.Connect(ctx, mongoinfra.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := mongoinfra.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongoinfra.NewGalleryRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("gallery index creation failed")
	}

	// --- Audit pipeline ---
	auditService := service.NewAuditService(
		mongoinfra.NewAuditRepository(db),
		redisinfra.NewAuditDedup(rdb),
		logger.With("audit"),
	)
	dispatcher := queue.NewDispatcher(0, auditService, logger.With("dispatcher"))
	dispatcher.Start(ctx)

	// --- OAuth discovery (optional) ---
	var discovery *oauth.DiscoveryCache
	if cfg.OAuth.IssuerURL != "" {
		discovery = oauth.NewDiscoveryCache(cfg.OAuth.IssuerURL, cfg.OAuth.DiscoveryTTL, nil)
	}

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, cfg, dispatcher, discovery, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("studio CRM API started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
