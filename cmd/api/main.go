package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/workforce-scheduler/internal/audit"
	"github.com/BruksfildServices01/workforce-scheduler/internal/auth"
	"github.com/BruksfildServices01/workforce-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/workforce-scheduler/internal/db"
	"github.com/BruksfildServices01/workforce-scheduler/internal/handlers"
	"github.com/BruksfildServices01/workforce-scheduler/internal/infra/ai"
	"github.com/BruksfildServices01/workforce-scheduler/internal/infra/billing"
	"github.com/BruksfildServices01/workforce-scheduler/internal/infra/ratelimit"
	infraRepo "github.com/BruksfildServices01/workforce-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/workforce-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/workforce-scheduler/internal/logger"
	"github.com/BruksfildServices01/workforce-scheduler/internal/routes"
)

const auditQueueSize = 256

func main() {
	cfg, err := config.Load()
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("load config")
	}

	log := logger.New(logger.Config{
		Environment: cfg.Server.Environment,
		Level:       cfg.Server.LogLevel,
	})

	if cfg.UsesDevelopmentSecrets() {
		log.Warn().Msg("using built-in development JWT secrets")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ======================================================
	// INFRA
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}

	auditRepo := infraRepo.NewAuditGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(auditRepo), log, auditQueueSize)

	deps := routes.Deps{
		Config: cfg,
		Log:    log,
		Repos: routes.Repositories{
			Accounts:   infraRepo.NewAccountGormRepository(db),
			Businesses: infraRepo.NewBusinessGormRepository(db),
			Staff:      infraRepo.NewStaffGormRepository(db),
			Schedules:  infraRepo.NewScheduleGormRepository(db),
			AuditLogs:  auditRepo,
		},
		Audit:     dispatcher,
		Tokens:    auth.NewTokenService(cfg.JWT),
		Generator: ai.NewClient(cfg.AI, log),
		DBPing: handlers.PingFunc(func(ctx context.Context) error {
			return dbpkg.Ping(ctx, db)
		}),
	}

	if !cfg.AI.Enabled() {
		log.Warn().Msg("AI_API_KEY not set, schedule generation will return empty drafts")
	}

	var redisStore *ratelimit.RedisStore
	if cfg.RateLimit.RedisURL != "" {
		redisStore, err = ratelimit.NewRedisStore(context.Background(), cfg.RateLimit.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, using in-process rate limit")
		}
	}
	if redisStore != nil {
		deps.RateStore = redisStore
	} else {
		deps.RateStore = ratelimit.NewMemoryStore()
	}

	if cfg.Storage.Enabled() {
		deps.Archiver = storage.NewS3Archive(cfg.Storage)
	}

	if cfg.Billing.Enabled() {
		gateway, err := billing.NewMercadoPago(cfg.Billing)
		if err != nil {
			log.Fatal().Err(err).Msg("billing")
		}
		deps.Gateway = gateway
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	if err := routes.RegisterRoutes(r, deps); err != nil {
		log.Fatal().Err(err).Msg("routes")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("environment", cfg.Server.Environment).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	// ======================================================
	// SHUTDOWN
	// ======================================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := dispatcher.Close(ctx); err != nil {
		log.Error().Err(err).Msg("audit drain")
	}
	if redisStore != nil {
		if err := redisStore.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}
	if err := dbpkg.Close(db); err != nil {
		log.Error().Err(err).Msg("database close")
	}
}
