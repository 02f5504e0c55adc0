package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/gravitas-games/gridstash/internal/catalog"
	"github.com/gravitas-games/gridstash/internal/config"
	"github.com/gravitas-games/gridstash/internal/logging"
	"github.com/gravitas-games/gridstash/internal/server"
	"github.com/gravitas-games/gridstash/pkg/inventory"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/server.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}
	log.WithField("path", configPath).Info("configuration loaded")

	// Item catalog
	var reg *inventory.Registry
	if cfg.Catalog.Path != "" {
		reg, err = catalog.Load(cfg.Catalog.Path)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}
	} else {
		reg = inventory.SampleCatalog()
	}
	log.WithField("items", reg.Len()).Info("catalog loaded")

	srv, err := server.New(cfg, reg, log)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := srv.Start(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	case sig := <-sigChan:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	// Graceful shutdown
	if err := srv.Shutdown(); err != nil {
		log.WithError(err).Error("error during shutdown")
	}

	log.Info("server stopped")
}
