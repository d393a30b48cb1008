// Package main initializes and starts the travel guide API server, setting
// up configuration, logging, storage, services, handlers and, optionally,
// TLS.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/travelguide/internal/config"
	"github.com/atinyakov/travelguide/internal/db"
	"github.com/atinyakov/travelguide/internal/logger"
	"github.com/atinyakov/travelguide/internal/middleware"
	"github.com/atinyakov/travelguide/internal/repository"
	"github.com/atinyakov/travelguide/internal/server/handler/http"
	"github.com/atinyakov/travelguide/internal/service"
	"github.com/atinyakov/travelguide/internal/session"
	"github.com/atinyakov/travelguide/internal/validation"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const (
	// memorySweepInterval matches the check period of the in-memory
	// session store.
	memorySweepInterval = 24 * time.Hour
	// postgresSweepInterval is how often expired session rows are deleted.
	postgresSweepInterval = time.Hour

	demoPassword    = "password"
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Select storage: PostgreSQL when a DSN is configured, memory otherwise.
	storage, sweepInterval, closeStorage := openStorage(options.DatabaseDSN, zapLogger)
	defer closeStorage()

	// Seed the demo account so anonymous trips and bookings have an owner.
	hash, err := service.HashPassword(demoPassword)
	if err != nil {
		zapLogger.Fatal("failed to hash demo password", zap.Error(err))
	}
	demo, err := repository.SeedUser(ctx, storage, repository.DemoUser(hash))
	if err != nil {
		zapLogger.Fatal("failed to seed demo user", zap.Error(err))
	}
	zapLogger.Info("demo user ready", zap.Int64("id", demo.ID), zap.String("username", demo.Username))

	if owner, err := storage.GetUser(ctx, options.DefaultUserID); err != nil {
		zapLogger.Fatal("failed to look up default user", zap.Error(err))
	} else if owner == nil {
		zapLogger.Warn("default user does not exist; anonymous trips and bookings will fail",
			zap.Int64("default_user_id", options.DefaultUserID))
	}

	session.StartSweeper(ctx, storage.Sessions(), sweepInterval, zapLogger)

	// Initialize business-logic services.
	v := validation.New()
	tripService := service.NewTripService(storage, v)
	bookingService := service.NewBookingService(storage, v)
	contactService := service.NewContactService(storage, v)
	accountService := service.NewAccountService(storage, storage.Sessions(), options.SessionTTL, v)
	destinationService, err := service.NewDestinationService()
	if err != nil {
		zapLogger.Fatal("failed to encode destination catalog", zap.Error(err))
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(http.Handlers{
		Auth: &http.AuthHandler{
			AccountService: accountService,
			TripService:    tripService,
			BookingService: bookingService,
			SecureCookies:  options.TLSEnabled(),
			Logger:         zapLogger,
		},
		Trips:        &http.TripHandler{TripService: tripService, DefaultUserID: options.DefaultUserID, Logger: zapLogger},
		Bookings:     &http.BookingHandler{BookingService: bookingService, DefaultUserID: options.DefaultUserID, Logger: zapLogger},
		Contact:      &http.ContactHandler{ContactService: contactService, Logger: zapLogger},
		Destinations: &http.DestinationHandler{Catalog: destinationService},
		Health:       &http.HealthHandler{Storage: storage, Logger: zapLogger},
	}, accountService, middleware.NewMetrics(), zapLogger)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if options.TLSEnabled() {
			zapLogger.Info("starting HTTPS server", zap.String("addr", options.Port))
			serveErr <- server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
			return
		}
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}

// openStorage returns the configured storage, the interval at which its
// expired sessions are pruned and a function releasing its resources.
func openStorage(dsn string, zapLogger *zap.Logger) (repository.Storage, time.Duration, func()) {
	if dsn == "" {
		zapLogger.Info("no database configured, using in-memory storage")
		return repository.NewMemoryStorage(), memorySweepInterval, func() {}
	}

	postgresDB, err := db.InitPostgres(dsn)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	return repository.NewPostgresStorage(postgresDB), postgresSweepInterval, func() {
		if err := postgresDB.Close(); err != nil {
			zapLogger.Error("failed to close database", zap.Error(err))
		}
	}
}
