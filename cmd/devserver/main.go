package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"ftms-portal/internal/config"
	"ftms-portal/internal/devserver"
	"ftms-portal/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Logging.Development)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	store := devserver.NewStore()
	if err := devserver.Seed(store); err != nil {
		zlog.Fatal("failed to seed store", zap.Error(err))
	}

	job, err := devserver.NewOverdueJob(store, cfg.Server.OverdueSpec, zlog)
	if err != nil {
		zlog.Fatal("invalid overdue cron spec", zap.Error(err))
	}
	job.Start()
	defer job.Stop()

	app := devserver.New(cfg, store, zlog)

	go gracefulShutdown(app, zlog)

	zlog.Info("dev server starting",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.AppMode))
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		zlog.Fatal("server stopped unexpectedly", zap.Error(err))
	}
}

// gracefulShutdown stops the server when an interrupt arrives
func gracefulShutdown(app *fiber.App, zlog *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down dev server")
	if err := app.Shutdown(); err != nil {
		zlog.Error("error during shutdown", zap.Error(err))
	}
}
