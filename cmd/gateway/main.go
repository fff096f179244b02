package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/marketplace/gateway"
	"github.com/example/marketplace/pkg/app"
	"github.com/example/marketplace/pkg/config"
	"github.com/example/marketplace/pkg/logger"
	"github.com/example/marketplace/pkg/metrics"
	"go.uber.org/zap"
)

// @title                       Marketplace Orders API
// @version                     1.0
// @description                 Multi-vendor order ledger: checkout, vendor views, item status, dashboards and waybills.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the config file")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting API Gateway",
		zap.Int("port", cfg.Gateway.Port),
		zap.String("host", cfg.Gateway.Host),
		zap.String("database", cfg.Database.Driver))

	a, err := app.New(cfg, cfg.Gateway.Name, log)
	if err != nil {
		log.Fatal("Failed to initialise backend", zap.Error(err))
	}
	defer a.Close()

	gw := gateway.NewGateway(cfg, log.Named("gateway"), a.GatewayDeps(metrics.NewServerMetrics("gateway")))
	gw.SetupRoutes()

	// Start gateway in goroutine
	gwErr := make(chan error, 1)
	go func() {
		if err := gw.Start(); err != nil {
			gwErr <- err
		}
	}()

	log.Info("Gateway started successfully")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info("Received shutdown signal")
	case err := <-gwErr:
		log.Error("Gateway error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := gw.Shutdown(ctx); err != nil {
		log.Error("Gateway shutdown error", zap.Error(err))
	}

	log.Info("Gateway stopped")
}
