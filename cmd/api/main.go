package main

// @title Terrain Analyst API
// @version 1.0.0
// @description Аналитик местности для поисково-спасательных операций: анализ местности, препятствия, маршруты, карты GeoJSON и мониторинг изменений.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

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
	httpDelivery "github.com/terrain-analyst/internal/delivery/http"
	"github.com/terrain-analyst/internal/delivery/http/handler"
	"github.com/terrain-analyst/internal/pkg/logger"
	redisRepo "github.com/terrain-analyst/internal/repository/redis"
	"github.com/terrain-analyst/internal/scheduler"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Terrain Analyst API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Wire the analyst; the change monitor publishes through Redis
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	analyst, err := app.Build(ctx, cfg, log, cfg.Worker.MonitorEnabled)
	cancel()
	if err != nil {
		log.Fatal("Failed to initialize analyst", zap.Error(err))
	}
	defer analyst.Close()

	checks := make(map[string]httpDelivery.HealthChecker)
	if analyst.Redis != nil {
		checks["redis"] = analyst.Redis
	}
	if analyst.Postgres != nil {
		checks["postgres"] = analyst.Postgres
	}
	if analyst.SQLite != nil {
		checks["sqlite"] = analyst.SQLite
	}

	// 4. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewTerrainHandler(analyst.UseCase, analyst.Dispatcher, log),
		handler.NewStatusHandler(analyst.UseCase),
		checks,
	)

	// 5. Periodic change monitoring
	var monitor *scheduler.ChangeMonitor
	if cfg.Worker.MonitorEnabled {
		locations := analyst.Analyses.Locations
		if len(cfg.Worker.MonitorLocations) > 0 {
			locations = scheduler.StaticLocations(cfg.Worker.MonitorLocations)
		}
		monitor = scheduler.NewChangeMonitor(
			analyst.UseCase,
			redisRepo.NewStreamRepository(analyst.Redis.Client(), log),
			locations,
			cfg.Worker.MonitorInterval,
			log,
		)
		if err := monitor.Start(); err != nil {
			log.Fatal("Failed to start change monitor", zap.Error(err))
		}
	}

	// 6. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	if monitor != nil {
		monitor.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
