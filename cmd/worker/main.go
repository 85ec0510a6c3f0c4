package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/app"
	"github.com/terrain-analyst/internal/config"
	"github.com/terrain-analyst/internal/pkg/logger"
	redisRepo "github.com/terrain-analyst/internal/repository/redis"
	"github.com/terrain-analyst/internal/scheduler"
	"github.com/terrain-analyst/internal/worker"
	"github.com/terrain-analyst/internal/worker/terrain"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Terrain Analyst Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Bool("monitor_enabled", cfg.Worker.MonitorEnabled))

	// 3. Wire the analyst with Redis for streams
	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	analyst, err := app.Build(initCtx, cfg, log, true)
	initCancel()
	if err != nil {
		log.Fatal("Failed to initialize analyst", zap.Error(err))
	}
	defer analyst.Close()

	streamRepo := redisRepo.NewStreamRepository(analyst.Redis.Client(), log)

	// 4. Workers
	workerManager := worker.NewWorkerManager(cfg.Worker.ShutdownTimeout, log)
	workerManager.Register(terrain.NewRequestWorker(
		streamRepo,
		analyst.Dispatcher,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	).WithReclaimIdle(cfg.Worker.ReclaimIdle))

	var monitor *scheduler.ChangeMonitor
	if cfg.Worker.MonitorEnabled {
		locations := analyst.Analyses.Locations
		if len(cfg.Worker.MonitorLocations) > 0 {
			locations = scheduler.StaticLocations(cfg.Worker.MonitorLocations)
		}
		monitor = scheduler.NewChangeMonitor(analyst.UseCase, streamRepo, locations, cfg.Worker.MonitorInterval, log)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}
	if monitor != nil {
		if err := monitor.Start(); err != nil {
			log.Fatal("Failed to start change monitor", zap.Error(err))
		}
	}

	// 5. Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	if monitor != nil {
		monitor.Stop()
	}

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
