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

	"golang.org/x/sync/errgroup"

	"lookup_widget_backend/internal/adapters"
	"lookup_widget_backend/internal/events"
	apphttp "lookup_widget_backend/internal/http"
	"lookup_widget_backend/internal/http/router"
	"lookup_widget_backend/internal/lookup"
	"lookup_widget_backend/internal/metadata"
	"lookup_widget_backend/internal/scheduler"
	"lookup_widget_backend/internal/widgetconfig"
	"lookup_widget_backend/platform/cache"
	"lookup_widget_backend/platform/config"
	"lookup_widget_backend/platform/db"
	"lookup_widget_backend/platform/logger"
	"lookup_widget_backend/platform/validator"

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
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.DatabaseError("run migrations", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.DatabaseError("connect", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Metadata cache; nil when REDIS_URL is not configured.
	metaCache, err := cache.New(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	if metaCache != nil {
		defer metaCache.Close()
		log.Info("metadata cache connected")
	} else {
		log.Warn("REDIS_URL not configured; metadata caching disabled")
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	widgetConfigModule := widgetconfig.NewModule(pool, eventBus, log)
	metadataModule := metadata.NewModule(pool, metaCache, eventBus, log)

	// The runtime search request carries a widget id only; the stored
	// configuration supplies any extra filter.
	filterResolver := adapters.NewWidgetFilterResolver(widgetConfigModule.Service())
	lookupModule := lookup.NewModule(pool, filterResolver, eventBus, log, val, cfg.SearchDebugQuery)

	if cfg.SeedFile != "" {
		if err := metadataModule.Service().ApplySeed(ctx, cfg.SeedFile); err != nil {
			log.Error("failed to apply catalog seed", "error", err, "file", cfg.SeedFile)
			panic("failed to apply catalog seed: " + err.Error())
		}
		log.Info("catalog seed applied", "file", cfg.SeedFile)
	}

	// ========================================================================
	// Background Workers
	// ========================================================================

	group, groupCtx := errgroup.WithContext(ctx)

	if cfg.RedisURL != "" {
		refreshClient, err := scheduler.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize scheduler client", "error", err)
			panic("failed to initialize scheduler client: " + err.Error())
		}
		defer refreshClient.Close()

		worker, err := scheduler.NewWorker(cfg, metadataModule.Service(), log)
		if err != nil {
			log.Error("failed to initialize scheduler worker", "error", err)
			panic("failed to initialize scheduler worker: " + err.Error())
		}

		dispatcher := scheduler.NewRefreshDispatcher(refreshClient, cfg.MetadataRefreshInterval, log)
		dispatcher.SubscribeCatalogEvents(eventBus)

		group.Go(func() error {
			worker.Run(groupCtx)
			return nil
		})
		group.Go(func() error {
			dispatcher.Run(groupCtx)
			return nil
		})
		log.Info("scheduler started", "queue", cfg.AsynqQueueName, "refresh_interval", cfg.MetadataRefreshInterval.String())
	} else {
		log.Warn("REDIS_URL not configured; background cache refresh disabled")
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   pool,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			lookupModule,
			metadataModule,
			widgetConfigModule,
		},
	}

	engine := router.New(app)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
	log.Info("server stopped")
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
