package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"driveu/internal/app"
	"driveu/internal/booking"
	"driveu/internal/config"
	"driveu/internal/handler"
	"driveu/internal/logger"
	"driveu/internal/service"
	"driveu/internal/session"
)

func main() {
	// Load configuration.
	cfg := config.Load()
	log := logger.New(cfg.Log.Service, cfg.Log.Level)
	slog.SetDefault(log)
	gin.SetMode(gin.ReleaseMode)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	nrApp := app.NewRelicApp(cfg.NewRelic, log)
	if nrApp != nil {
		defer nrApp.Shutdown(5 * time.Second)
	}

	var stores *app.Stores
	switch cfg.Storage {
	case config.StorageMemory:
		stores = app.NewMemoryStores()
		log.Warn("using in-memory storage, data is lost on restart")

	case config.StoragePostgres:
		db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			return err
		}
		defer db.Close()
		log.Info("connected to PostgreSQL", "host", cfg.Database.Host, "db", cfg.Database.DBName)

		if err := app.PrepareDatabase(ctx, db, log); err != nil {
			return err
		}

		redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp, log)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		stores = app.NewBackedStores(db, redisClient)

	default:
		return errors.New("unknown STORAGE " + cfg.Storage + `, want "postgres" or "memory"`)
	}

	notifier, closer, err := app.NewNotifier(ctx, cfg.RabbitMQ, log)
	if err != nil {
		return err
	}
	defer closer.Close()

	server := wireServer(stores, notifier, nrApp, cfg, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "port", cfg.Server.Port, "storage", cfg.Storage)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down server", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("server exited")
	return nil
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(stores *app.Stores, notifier service.Notifier, nrApp *newrelic.Application, cfg *config.Config, log *slog.Logger) *http.Server {
	issuer := session.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RememberTTL)

	// Initialize services.
	matchingService := service.NewMatchingService(stores.Locations, stores.Cache, stores.Drivers, log)
	authService := service.NewAuthService(stores.Users, stores.Drivers, stores.Accounts, issuer, cfg.Auth.BcryptCost, log)
	driverService := service.NewDriverService(stores.Locations, matchingService, stores.Users, stores.Drivers, cfg.Matching.DefaultRadiusKm)
	bookingService := service.NewBookingService(
		stores.Bookings,
		stores.Drivers,
		stores.Availability,
		stores.Locks,
		matchingService,
		booking.NewLifecycle(booking.CryptoSource{}),
		notifier,
		service.BookingSettings{LockTTL: cfg.Booking.LockTTL, AvgSpeedKmh: cfg.Matching.AvgSpeedKmh},
		log,
	)
	placesService := service.NewPlacesService(stores.Places, cfg.Matching.AvgSpeedKmh)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		UserHandler:    handler.NewUserHandler(authService),
		DriverHandler:  handler.NewDriverHandler(driverService),
		BookingHandler: handler.NewBookingHandler(bookingService),
		PlacesHandler:  handler.NewPlacesHandler(placesService),
		Issuer:         issuer,
		Responses:      stores.Responses,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		NewRelicApp:    nrApp,
		Logger:         log,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
