package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	_ "github.com/terrain-analyst/docs"
	"github.com/terrain-analyst/internal/config"
	"github.com/terrain-analyst/internal/delivery/http/handler"
	"github.com/terrain-analyst/internal/delivery/http/middleware"
	"github.com/terrain-analyst/internal/pkg/errors"
	"github.com/terrain-analyst/internal/pkg/utils"
)

// HealthChecker - внешняя зависимость, проверяемая в /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	terrainHandler *handler.TerrainHandler
	statusHandler  *handler.StatusHandler
	checks         map[string]HealthChecker
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	terrainHandler *handler.TerrainHandler,
	statusHandler *handler.StatusHandler,
	checks map[string]HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Terrain Analyst",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		terrainHandler: terrainHandler,
		statusHandler:  statusHandler,
		checks:         checks,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App exposes the fiber app for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)

	// Единая точка входа, как у stream-воркера
	api.Post("/requests", s.terrainHandler.Dispatch)

	terrain := api.Group("/terrain")
	terrain.Post("/analyze", s.terrainHandler.AnalyzeTerrain)
	terrain.Post("/obstacles", s.terrainHandler.IdentifyObstacles)
	terrain.Get("/:location/map", s.terrainHandler.GetTerrainMap)
	terrain.Get("/:location/changes", s.terrainHandler.MonitorTerrainChanges)
	terrain.Get("/:location/crossing", s.terrainHandler.EvaluateCrossing)

	// База знаний postgres; без неё 501
	terrain.Get("/locations", s.terrainHandler.LocationsWithTerrain)
	terrain.Get("/:location/history", s.terrainHandler.TerrainHistory)

	api.Post("/paths", s.terrainHandler.GeneratePath)

	api.Get("/status", s.statusHandler.GetStatus)
	api.Put("/status", s.statusHandler.UpdateStatus)
}

func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	deps := make(fiber.Map, len(s.checks))
	healthy := true
	for name, check := range s.checks {
		if err := check.Health(ctx); err != nil {
			deps[name] = err.Error()
			healthy = false
			continue
		}
		deps[name] = "ok"
	}

	status, code := "healthy", fiber.StatusOK
	if !healthy {
		status, code = "degraded", fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":       status,
		"time":         time.Now(),
		"dependencies": deps,
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler renders fiber errors (404 routes, body limits) in the API error shape.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := errors.ErrInternalServer.Message

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		c.Status(code)
		return utils.SendRaw(c, utils.ErrorResponse{
			Error: errors.New("HTTP_ERROR", message, code),
		})
	}
}
