package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bcssewl/optivise-installer/internal/infrastructure/config"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/logging"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.NewDefault().Warn("invalid environment, using defaults", zap.Error(err))
		cfg = config.Default()
	}

	// Flags override environment
	port := flag.String("port", cfg.Server.Port, "Server port")
	hostAddr := flag.String("host", cfg.Server.Host, "Listen address")
	manifestURL := flag.String("manifest-url", cfg.Manifest.URL, "Manifest download URL")
	dev := flag.Bool("dev", cfg.Logging.Development, "Development logging")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Server.Host = *hostAddr
	cfg.Manifest.URL = *manifestURL
	cfg.Logging.Development = *dev
	if *dev && cfg.Logging.Level == "info" {
		cfg.Logging.Level = "debug"
	}

	logger := logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development)

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case <-sigChan:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Error during shutdown", zap.Error(err))
		}
	case err := <-errChan:
		if err != nil {
			logger.Fatal("Server error", zap.Error(err))
		}
	}
}
