package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/diagnosis/local-hotel/internal/http/middleware"
	"github.com/diagnosis/local-hotel/internal/http/router"
	"github.com/diagnosis/local-hotel/internal/platform/auth"
	"github.com/diagnosis/local-hotel/internal/platform/mailer"
	"github.com/diagnosis/local-hotel/internal/repo/postgres"
	"github.com/diagnosis/local-hotel/internal/repo/redisstore"
	"github.com/diagnosis/local-hotel/internal/service"
	"github.com/diagnosis/local-hotel/pkg/config"
	"github.com/diagnosis/local-hotel/pkg/database"
	"github.com/diagnosis/local-hotel/pkg/events"
	"github.com/diagnosis/local-hotel/pkg/logger"
	mw "github.com/diagnosis/local-hotel/pkg/middleware"
)

const shutdownTimeout = 30 * time.Second

func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	if cfg.UsingDevSecret() {
		logger.Warn("JWT_SECRET not set, using the development signing secret")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.Database.AutoMigrate {
		if err := migrateUp(cfg.Database.URL); err != nil {
			return err
		}
	}

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return err
	}
	defer pool.Close()

	deps := router.Deps{Config: cfg}

	if cfg.Redis.URL != "" {
		rdb, err := redisstore.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Error("Failed to connect to Redis", "error", err)
			return err
		}
		defer rdb.Close()
		deps.RateLimits = redisstore.NewRateLimiter(rdb)
		deps.Idempotency = redisstore.NewIdempotencyStore(rdb)
	} else {
		logger.Info("Redis not configured, rate limiting and idempotency disabled")
	}

	publisher, err := events.New(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		return err
	}
	defer publisher.Close()

	tokens, err := auth.NewTokenCodec(cfg.Auth.JWTSecret)
	if err != nil {
		return err
	}

	guests := postgres.NewGuestsRepo(pool, cfg.Database.QueryTimeout)
	bookings := postgres.NewBookingsRepo(pool, cfg.Database.QueryTimeout)

	deps.Auth = service.NewAuthService(guests, auth.NewPasswordHasher(cfg.Auth.Argon2), tokens, mailer.New(cfg.Email), publisher)
	deps.Bookings = service.NewBookingService(bookings, publisher)
	deps.Guests = guests
	deps.Tokens = tokens
	deps.Session = auth.SessionCarrier{CookieName: cfg.Auth.CookieName, Secure: cfg.Auth.CookieSecure}
	deps.Gatherer = newRegistry()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.New(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	shutdownErr := make(chan error, 1)
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down Local Hotel API...")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logger.Info("Starting Local Hotel API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err)
		return oops.Code("SERVER_FAILED").Wrap(err)
	}

	if err := <-shutdownErr; err != nil {
		logger.Error("Shutdown error", "error", err)
		return err
	}
	logger.Info("Server stopped")
	return nil
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	mw.RegisterMetrics(reg)
	middleware.RegisterMetrics(reg)
	return reg
}
