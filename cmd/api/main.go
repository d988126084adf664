package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/cjvillanueva/casamar-backend/api/routes"
	"github.com/cjvillanueva/casamar-backend/internal/bookings"
	"github.com/cjvillanueva/casamar-backend/internal/export"
	"github.com/cjvillanueva/casamar-backend/internal/rooms"
	"github.com/cjvillanueva/casamar-backend/pkg/config"
	"github.com/cjvillanueva/casamar-backend/pkg/db"
	"github.com/cjvillanueva/casamar-backend/pkg/logger"
	"github.com/cjvillanueva/casamar-backend/pkg/metrics"
	"github.com/cjvillanueva/casamar-backend/pkg/migrate"
	"github.com/cjvillanueva/casamar-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "redis not configured, booking retries are not idempotent")
	}

	registry := prometheus.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(registry)

	var exportSvc *export.Service
	if cfg.Sheets.Enabled() {
		appender, err := export.NewSheetsAppender(context.Background(), cfg.Sheets)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap sheets export", err)
			os.Exit(1)
		}
		exportSvc = export.NewService(export.ServiceParams{
			Appender: appender,
			Logger:   logg,
			Metrics:  bookingMetrics,
			Timeout:  cfg.Sheets.Timeout,
		})
	} else {
		logg.Warn(context.Background(), "sheets export not configured, bookings will not be exported")
	}

	roomsService, err := rooms.NewService(rooms.ServiceParams{
		Repo: rooms.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create rooms service", err)
		os.Exit(1)
	}

	bookingsParams := bookings.ServiceParams{
		Repo:    bookings.NewRepository(dbClient.DB()),
		Tx:      dbClient,
		Metrics: bookingMetrics,
	}
	if exportSvc != nil {
		bookingsParams.Exporter = exportSvc
	}
	bookingsService, err := bookings.NewService(bookingsParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create bookings service", err)
		os.Exit(1)
	}

	routerParams := routes.RouterParams{
		Config:          cfg,
		Logger:          logg,
		DB:              dbClient,
		MetricsRegistry: registry,
		RoomsService:    roomsService,
		BookingsService: bookingsService,
	}
	if redisClient != nil {
		routerParams.RedisClient = redisClient
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(routerParams),
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-sigCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))

	// Let in-flight booking exports finish before closing connections.
	if exportSvc != nil {
		exportSvc.Flush()
	}

	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	closeErr = multierr.Append(closeErr, dbClient.Close())

	if closeErr != nil {
		logg.Error(ctx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}
