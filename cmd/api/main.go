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

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/registrar-queue/internal/audit"
	"github.com/BruksfildServices01/registrar-queue/internal/auth"
	"github.com/BruksfildServices01/registrar-queue/internal/config"
	dbpkg "github.com/BruksfildServices01/registrar-queue/internal/db"
	"github.com/BruksfildServices01/registrar-queue/internal/handlers"
	"github.com/BruksfildServices01/registrar-queue/internal/infra/lock"
	"github.com/BruksfildServices01/registrar-queue/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/registrar-queue/internal/infra/repository"
	"github.com/BruksfildServices01/registrar-queue/internal/logger"
	"github.com/BruksfildServices01/registrar-queue/internal/metrics"
	"github.com/BruksfildServices01/registrar-queue/internal/middleware"
	"github.com/BruksfildServices01/registrar-queue/internal/routes"
	"github.com/BruksfildServices01/registrar-queue/internal/timezone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	if !timezone.SetDefault(cfg.Timezone) {
		log.Warn().Str("timezone", cfg.Timezone).Msg("unknown APP_TIMEZONE, using default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// STORE
	// ======================================================
	stores, ping, closeStore, err := openStores(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := dbpkg.Seed(ctx, stores.Users, stores.Catalog, dbpkg.AdminAccount{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}, log); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	// ======================================================
	// SCOPE LOCKER
	// ======================================================
	locker, closeLocker, err := openLocker(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeLocker()

	// ======================================================
	// METRICS / AUDIT / RATE LIMIT
	// ======================================================
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	dispatcher := audit.NewDispatcher(audit.New(stores.Audit), log)
	defer dispatcher.Close()

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Stop()

	// ======================================================
	// HTTP
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		Config:      cfg,
		Stores:      stores,
		Locker:      locker,
		Issuer:      auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Audit:       dispatcher,
		Metrics:     collector,
		Gatherer:    reg,
		RateLimiter: limiter,
		Ping:        ping,
		Log:         log,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("store", cfg.StoreDriver).
			Bool("redis_lock", cfg.RedisURL != "").
			Msg("server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info().Msg("server stopped gracefully")
	return nil
}

func openStores(cfg *config.Config, log zerolog.Logger) (routes.Stores, handlers.Pinger, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Warn().Msg("using in-memory store, data is lost on restart")
		s := memory.New()
		return routes.Stores{
			Appointments: s,
			Users:        s,
			Catalog:      s,
			Audit:        s,
		}, s.Ping, func() {}, nil
	}

	db, err := dbpkg.Open(cfg)
	if err != nil {
		return routes.Stores{}, nil, nil, err
	}

	stores := routes.Stores{
		Appointments: infraRepo.NewAppointmentGormRepository(db),
		Users:        infraRepo.NewUserGormRepository(db),
		Catalog:      infraRepo.NewCatalogGormRepository(db),
		Audit:        infraRepo.NewAuditGormRepository(db),
	}
	ping := func(ctx context.Context) error { return dbpkg.Ping(ctx, db) }
	closeFn := func() {
		if err := dbpkg.Close(db); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}
	return stores, ping, closeFn, nil
}

func openLocker(ctx context.Context, cfg *config.Config, log zerolog.Logger) (lock.Locker, func(), error) {
	if cfg.RedisURL == "" {
		return lock.NewLocalLocker(cfg.LockWait), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	locker := lock.NewRedisLocker(client, lock.RedisConfig{
		TTL:  cfg.LockTTL,
		Wait: cfg.LockWait,
	}, log)

	return locker, func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("close redis")
		}
	}, nil
}
