package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/portal-backend/internal/config"
	"github.com/stemsi/portal-backend/internal/database"
	"github.com/stemsi/portal-backend/internal/handler"
	"github.com/stemsi/portal-backend/internal/logger"
	"github.com/stemsi/portal-backend/internal/middleware"
	"github.com/stemsi/portal-backend/internal/portalapi"
	"github.com/stemsi/portal-backend/internal/repository"
	"github.com/stemsi/portal-backend/internal/router"
	"github.com/stemsi/portal-backend/internal/service"
	"github.com/stemsi/portal-backend/internal/validator"
	"github.com/stemsi/portal-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("assessment_source", cfg.AssessmentSource).
		Msg("Starting portal backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	assessmentRepo := repository.NewAssessmentRepository(pool)
	snapshotRepo := repository.NewResultSnapshotRepository(pool)

	// Results read from the local table unless the legacy portal is the
	// system of record.
	var source service.AssessmentSource = assessmentRepo
	if cfg.AssessmentSource == config.SourcePortal {
		source = portalapi.NewClient(cfg.PortalAPIURL, cfg.PortalAPITimeout, log)
	}

	// ─── Initialize Services ──────────────────────────────────────────
	queue := service.NewRedisRecomputeQueue(rdb)
	feed := service.NewRedisResultFeed(rdb)

	authService := service.NewAuthService(cfg, userRepo, service.NewRedisSessionStore(rdb))
	resultService := service.NewResultService(source, service.NewRedisResultCache(rdb, cfg.ResultsCacheTTL), log)
	assessmentService := service.NewAssessmentService(assessmentRepo, userRepo, resultService, queue, log)
	snapshotService := service.NewSnapshotService(snapshotRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	healthChecks := []handler.HealthCheck{
		{Name: "postgres", Check: pool.Ping},
		{Name: "redis", Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	}
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Result:     handler.NewResultHandler(resultService),
		Assessment: handler.NewAssessmentHandler(assessmentService),
		Snapshot:   handler.NewSnapshotHandler(snapshotService),
		WS:         handler.NewWSHandler(resultService, feed, log, cfg.AllowedOrigins),
		System:     handler.NewSystemHandler(healthChecks, queue.Len, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	snapshotWorker := worker.NewSnapshotWorker(queue, resultService, snapshotRepo, feed, log)
	workers.Add(1)
	go func() {
		defer workers.Done()
		snapshotWorker.Start(workerCtx)
	}()

	// ─── Setup Router ──────────────────────────────────────────────────
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerMinute)
	defer loginLimiter.Stop()

	r := router.SetupRouter(authService, loginLimiter, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the worker and wait for its final flush.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
