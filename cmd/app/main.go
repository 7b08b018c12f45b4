package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"iotstream/cmd"
	httpadapter "iotstream/internal/adapters/in/http"
	"iotstream/internal/adapters/out/postgres/readingrepo"
	"iotstream/internal/pkg/retry"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	limiterInitAttempts = 3
	limiterInitWait     = time.Second
	shutdownTimeout     = 15 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config := cmd.LoadConfig()

	db, err := gorm.Open(gorm_postgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = db.AutoMigrate(&readingrepo.ReadingDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	root := cmd.NewCompositionRoot(config, db, logger)

	// The rate limiter guards every request; refuse to start without it.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = retry.InitWithRetry(ctx, "rate_limiter", root.RateLimiter().Ping,
		limiterInitAttempts, limiterInitWait, logger); err != nil {
		logger.Error("Rate limiter backend unavailable", "error", err)
		os.Exit(1)
	}

	gaugeJob := root.CreateDeviceGaugeJob()
	if err = gaugeJob.Start(); err != nil {
		logger.Error("Failed to start device gauge job", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(httpadapter.RequestMetrics())
	e.Use(httpadapter.SecurityHeaders())
	e.Use(httpadapter.RateLimit(root.RateLimiter()))
	root.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)
		if serveErr := e.Start(addr); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", "error", serveErr)
			stop()
		}
	}()
	logger.Info("IoT stream engine started", "port", config.HTTPPort)

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
	gaugeJob.Stop()
	if err = root.JobManager().Shutdown(shutdownCtx); err != nil {
		logger.Error("Polling job shutdown failed", "error", err)
	}
	if err = root.Producer().Close(); err != nil {
		logger.Error("Producer close failed", "error", err)
	}
	logger.Info("Shutdown complete")
}
