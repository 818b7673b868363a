package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"printshop_backend/internal/adapters/storage"
	"printshop_backend/internal/auth"
	"printshop_backend/internal/budgets"
	"printshop_backend/internal/email"
	apphttp "printshop_backend/internal/http"
	"printshop_backend/internal/http/router"
	"printshop_backend/internal/materials"
	"printshop_backend/internal/printers"
	"printshop_backend/internal/profiles"
	"printshop_backend/internal/realtime"
	"printshop_backend/internal/reminders"
	"printshop_backend/platform/config"
	"printshop_backend/platform/db"
	"printshop_backend/platform/events"
	"printshop_backend/platform/logger"
	"printshop_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.Migrate(ctx, cfg.GetDatabaseURL(), "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg.GetDatabaseURL())
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender := email.NewSender(cfg, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Storage service for avatar uploads (MinIO)
	var storageSvc storage.StorageService
	if cfg.IsMinIOEnabled() {
		minioSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		ensureBucket(ctx, log, minioSvc, "avatars", cfg.GetMinioBucketAvatars())
		storageSvc = minioSvc
		log.Info("storage service initialized", "avatarsBucket", cfg.GetMinioBucketAvatars())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; avatar uploads disabled")
	}

	reminderClient, closeReminders := initReminderClient(cfg, log)
	if closeReminders != nil {
		defer closeReminders()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, sender, val)
	profilesModule := profiles.NewModule(pool, storageSvc, cfg.GetMinioBucketAvatars(), val, log)
	printersModule := printers.NewModule(pool, eventBus, val)
	materialsModule := materials.NewModule(pool, eventBus, val)
	budgetsModule := budgets.NewModule(pool, eventBus, val, log)
	if reminderClient != nil {
		budgetsModule.SetReminderScheduler(reminderClient)
	}

	// Realtime module fans change events out to SSE clients and, via
	// Redis, to every other process.
	realtimeModule, err := realtime.NewModule(cfg.GetRedisURL(), log)
	if err != nil {
		log.Error("failed to initialize realtime module", "error", err)
		panic("failed to initialize realtime module: " + err.Error())
	}
	realtimeModule.RegisterHandlers(eventBus)
	go realtimeModule.Run(ctx)
	defer realtimeModule.Close()

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			profilesModule,
			printersModule,
			materialsModule,
			budgetsModule,
			realtimeModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// ensureBucket wraps the retry logic for verifying a MinIO bucket exists.
func ensureBucket(ctx context.Context, log *logger.Logger, storageSvc storage.StorageService, name, bucket string) {
	if err := withRetry(ctx, log, "ensure "+name+" bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
}

func initReminderClient(cfg config.RedisConfig, log *logger.Logger) (*reminders.Client, func()) {
	if !cfg.IsRedisEnabled() {
		log.Warn("REDIS_URL not configured; delivery reminders disabled")
		return nil, nil
	}

	client, err := reminders.NewClient(cfg.GetRedisURL())
	if err != nil {
		log.Error("failed to initialize reminder client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
