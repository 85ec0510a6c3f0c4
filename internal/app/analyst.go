package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/config"
	"github.com/terrain-analyst/internal/domain/repository"
	"github.com/terrain-analyst/internal/infrastructure/geocoder"
	"github.com/terrain-analyst/internal/infrastructure/survey"
	"github.com/terrain-analyst/internal/infrastructure/weather"
	"github.com/terrain-analyst/internal/repository/cache"
	"github.com/terrain-analyst/internal/repository/memory"
	"github.com/terrain-analyst/internal/repository/postgres"
	"github.com/terrain-analyst/internal/repository/sqlite"
	"github.com/terrain-analyst/internal/rules"
	"github.com/terrain-analyst/internal/usecase"
)

// Analyst - собранный аналитик и его внешние подключения.
// Connection fields are nil when the configuration does not need them.
type Analyst struct {
	UseCase    *usecase.TerrainUseCase
	Dispatcher *usecase.Dispatcher
	Analyses   *memory.AnalysisStore

	Redis    *cache.Redis
	Postgres *postgres.DB
	SQLite   *sqlite.DB

	logger *zap.Logger
}

// Build wires the analyst from configuration. Redis is connected when the
// knowledge base uses it or withRedis is set (stream workers).
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger, withRedis bool) (*Analyst, error) {
	a := &Analyst{
		Analyses: memory.NewAnalysisStore(),
		logger:   log,
	}

	if withRedis || cfg.KnowledgeBase.Driver == config.KnowledgeBaseRedis {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.Redis = redisClient
	}

	kb, err := a.knowledgeBase(ctx, cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	rng := rules.NewRand(cfg.Analyst.Seed)

	var weatherService repository.WeatherService
	switch cfg.Weather.Provider {
	case config.WeatherHTTP:
		weatherService = weather.NewHTTPClient(&cfg.Weather, log)
	default:
		weatherService = weather.NewSimulatedService(rng, cfg.Weather.RefreshInterval, log)
	}

	var geo repository.Geocoder = geocoder.NewHashGeocoder()
	if cfg.Geocoder.Provider == config.GeocoderGoogle {
		geo = geocoder.NewGoogleGeocoder(cfg.Geocoder.APIKey, geo, log)
	}

	a.UseCase = usecase.NewTerrainUseCase(usecase.TerrainDeps{
		Analyses:      a.Analyses,
		Obstacles:     memory.NewObstacleStore(),
		Weather:       weatherService,
		Geocoder:      geo,
		Surveyor:      survey.NewRandomSurveyor(rng),
		KnowledgeBase: kb,
		Rand:          rng,
	}, log)
	a.Dispatcher = usecase.NewDispatcher(a.UseCase, log)

	log.Info("Analyst initialized",
		zap.String("knowledge_base", cfg.KnowledgeBase.Driver),
		zap.String("weather", cfg.Weather.Provider),
		zap.String("geocoder", cfg.Geocoder.Provider),
		zap.Uint64("seed", cfg.Analyst.Seed))

	return a, nil
}

func (a *Analyst) knowledgeBase(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.KnowledgeBase, error) {
	switch cfg.KnowledgeBase.Driver {
	case config.KnowledgeBaseRedis:
		return cache.NewKnowledgeBase(a.Redis.Client(), cfg.KnowledgeBase.TTL, log), nil

	case config.KnowledgeBasePostgres:
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		a.Postgres = db
		kb := postgres.NewKnowledgeBase(db, log)
		if err := kb.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to prepare knowledge base schema: %w", err)
		}
		return kb, nil

	case config.KnowledgeBaseSQLite:
		db, err := sqlite.Open(&cfg.SQLite, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		a.SQLite = db
		return sqlite.NewKnowledgeBase(ctx, db, log)
	}
	return nil, nil
}

// Close releases every open connection.
func (a *Analyst) Close() {
	if a.Postgres != nil {
		if err := a.Postgres.Close(); err != nil {
			a.logger.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}
	if a.SQLite != nil {
		if err := a.SQLite.Close(); err != nil {
			a.logger.Error("Failed to close SQLite database", zap.Error(err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.logger.Error("Failed to close Redis connection", zap.Error(err))
		}
	}
}
