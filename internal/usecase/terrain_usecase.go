package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/domain/repository"
	"github.com/terrain-analyst/internal/export"
	"github.com/terrain-analyst/internal/pkg/errors"
	"github.com/terrain-analyst/internal/rules"
)

// TerrainDeps - зависимости аналитика. KnowledgeBase may be nil.
type TerrainDeps struct {
	Analyses      repository.AnalysisRepository
	Obstacles     repository.ObstacleRepository
	Weather       repository.WeatherService
	Geocoder      repository.Geocoder
	Surveyor      repository.TerrainSurveyor
	KnowledgeBase repository.KnowledgeBase
	Rand          rules.Rand
}

// TerrainUseCase owns the per-location analysis and obstacle caches.
// Operations are serialized: the caches are read-modify-write within a call.
type TerrainUseCase struct {
	mu sync.Mutex

	analyses  repository.AnalysisRepository
	obstacles repository.ObstacleRepository
	weather   repository.WeatherService
	geocoder  repository.Geocoder
	surveyor  repository.TerrainSurveyor
	kb        repository.KnowledgeBase
	archive   repository.KnowledgeArchive

	rng       rules.Rand
	generator *rules.ObstacleGenerator
	status    string
	now       func() time.Time
	logger    *zap.Logger
}

func NewTerrainUseCase(deps TerrainDeps, logger *zap.Logger) *TerrainUseCase {
	rng := deps.Rand
	if rng == nil {
		rng = rules.NewRand(0)
	}
	// История есть только у архивных баз знаний
	archive, _ := deps.KnowledgeBase.(repository.KnowledgeArchive)
	return &TerrainUseCase{
		analyses:  deps.Analyses,
		obstacles: deps.Obstacles,
		weather:   deps.Weather,
		geocoder:  deps.Geocoder,
		surveyor:  deps.Surveyor,
		kb:        deps.KnowledgeBase,
		archive:   archive,
		rng:       rng,
		generator: rules.NewObstacleGenerator(rng),
		status:    domain.DefaultMissionStatus,
		now:       time.Now,
		logger:    logger,
	}
}

// AnalyzeTerrain surveys the location, replaces its cached analysis and
// drops the obstacle list derived from the previous one.
func (uc *TerrainUseCase) AnalyzeTerrain(ctx context.Context, location, resolution string, includeWeather bool) (*domain.TerrainSnapshot, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.analyze(ctx, location, resolution, includeWeather)
}

func (uc *TerrainUseCase) analyze(ctx context.Context, location, resolution string, includeWeather bool) (*domain.TerrainSnapshot, error) {
	if strings.TrimSpace(location) == "" {
		return nil, errors.ErrLocationRequired
	}
	if resolution == "" {
		resolution = domain.DefaultResolution
	}

	snapshot, err := uc.surveyor.Survey(ctx, location, resolution)
	if err != nil {
		return nil, fmt.Errorf("survey %s: %w", location, err)
	}

	if includeWeather {
		conditions, err := uc.weather.GetCurrentConditions(ctx, location)
		if err != nil {
			return nil, err
		}
		assessment, err := uc.weather.AssessWeatherRisk(ctx, location)
		if err != nil {
			return nil, err
		}
		snapshot.WeatherConditions = conditions
		snapshot.WeatherRisks = assessment.Risks
		snapshot.Interactions = rules.AnalyzeInteractions(snapshot, conditions)
	}

	if err := uc.analyses.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("save analysis: %w", err)
	}
	if err := uc.obstacles.Invalidate(ctx, location); err != nil {
		return nil, fmt.Errorf("invalidate obstacles: %w", err)
	}

	uc.sink(ctx, snapshot)

	uc.logger.Info("Terrain analyzed",
		zap.String("location", location),
		zap.String("resolution", resolution),
		zap.Bool("weather", includeWeather),
		zap.Int("interactions", len(snapshot.Interactions)))
	return snapshot, nil
}

// sink pushes the analysis to the knowledge base. Failures never fail the analysis.
func (uc *TerrainUseCase) sink(ctx context.Context, snapshot *domain.TerrainSnapshot) {
	if uc.kb == nil {
		return
	}
	if err := uc.kb.UpdateTerrain(ctx, snapshot.Location, snapshot); err != nil {
		uc.logger.Warn("Knowledge base update failed",
			zap.String("location", snapshot.Location),
			zap.Error(errors.ErrKnowledgeBase.Wrap(err)))
	}
}

// ensureAnalysis reads through the analysis cache.
func (uc *TerrainUseCase) ensureAnalysis(ctx context.Context, location string, includeWeather bool) (*domain.TerrainSnapshot, error) {
	snapshot, err := uc.analyses.Get(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("get analysis: %w", err)
	}
	if snapshot != nil {
		return snapshot, nil
	}
	return uc.analyze(ctx, location, domain.DefaultResolution, includeWeather)
}

// ensureObstacles reads through the obstacle cache.
func (uc *TerrainUseCase) ensureObstacles(ctx context.Context, location string, includeWeather bool) ([]domain.Obstacle, error) {
	obstacles, ok, err := uc.obstacles.Get(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("get obstacles: %w", err)
	}
	if ok {
		return obstacles, nil
	}
	report, err := uc.identify(ctx, location, includeWeather)
	if err != nil {
		return nil, err
	}
	return report.Obstacles, nil
}

func (uc *TerrainUseCase) IdentifyObstacles(ctx context.Context, location string, includeWeather bool) (*domain.ObstacleReport, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.identify(ctx, location, includeWeather)
}

func (uc *TerrainUseCase) identify(ctx context.Context, location string, includeWeather bool) (*domain.ObstacleReport, error) {
	snapshot, err := uc.ensureAnalysis(ctx, location, includeWeather)
	if err != nil {
		return nil, err
	}
	center, err := uc.geocoder.Locate(ctx, location)
	if err != nil {
		return nil, err
	}

	// Погода учитывается, только если она была в анализе
	var weather *domain.WeatherSnapshot
	if includeWeather {
		weather = snapshot.WeatherConditions
	}

	obstacles := uc.generator.Generate(center, snapshot, weather)
	if err := uc.obstacles.Save(ctx, location, obstacles); err != nil {
		return nil, fmt.Errorf("save obstacles: %w", err)
	}

	uc.logger.Debug("Obstacles identified",
		zap.String("location", location),
		zap.Int("count", len(obstacles)))

	return &domain.ObstacleReport{
		Location:          location,
		ObstacleCount:     len(obstacles),
		Obstacles:         obstacles,
		WeatherFactored:   includeWeather,
		AnalysisTimestamp: uc.now(),
	}, nil
}

// GetTerrainMap exports the cached analysis and obstacles. The format is
// checked before anything is analyzed.
func (uc *TerrainUseCase) GetTerrainMap(ctx context.Context, location, format string, includeWeather bool) (*domain.FeatureCollection, error) {
	if format == "" {
		format = export.FormatGeoJSON
	}
	if !strings.EqualFold(format, export.FormatGeoJSON) {
		return nil, errors.UnsupportedFormat(format)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	snapshot, err := uc.ensureAnalysis(ctx, location, includeWeather)
	if err != nil {
		return nil, err
	}
	obstacles, err := uc.ensureObstacles(ctx, location, includeWeather)
	if err != nil {
		return nil, err
	}
	center, err := uc.geocoder.Locate(ctx, location)
	if err != nil {
		return nil, err
	}

	return export.Render(uc.rng, format, export.MapInput{
		Center:         center,
		Snapshot:       snapshot,
		Obstacles:      obstacles,
		IncludeWeather: includeWeather,
	})
}

// MonitorTerrainChanges compares the weather captured at the last analysis
// with the current conditions. It never analyzes.
func (uc *TerrainUseCase) MonitorTerrainChanges(ctx context.Context, location string) (*domain.ChangeReport, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	snapshot, err := uc.analyses.Get(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("get analysis: %w", err)
	}
	if snapshot == nil {
		return nil, &domain.AnalysisMissingError{Location: location}
	}

	current, err := uc.weather.GetCurrentConditions(ctx, location)
	if err != nil {
		return nil, err
	}

	changes := rules.DetectChanges(snapshot, current)
	return &domain.ChangeReport{
		Location:           location,
		LastAnalysis:       snapshot.AnalysisTimestamp,
		CurrentTime:        uc.now(),
		DetectedChanges:    changes,
		RequiresReanalysis: len(changes) > 0,
		CurrentWeather:     current,
	}, nil
}

func (uc *TerrainUseCase) EvaluateCrossingDifficulty(ctx context.Context, location string, obstacleType domain.ObstacleType) (*domain.CrossingReport, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, err := uc.ensureAnalysis(ctx, location, true); err != nil {
		return nil, err
	}
	obstacles, err := uc.ensureObstacles(ctx, location, true)
	if err != nil {
		return nil, err
	}
	current, err := uc.weather.GetCurrentConditions(ctx, location)
	if err != nil {
		return nil, err
	}

	evaluations := rules.EvaluateCrossing(obstacles, obstacleType, current)
	if len(evaluations) == 0 {
		present := make([]domain.ObstacleType, 0, len(obstacles))
		for _, o := range obstacles {
			present = append(present, o.Type)
		}
		suggestion, _ := rules.SuggestObstacleType(string(obstacleType), present)
		return nil, &domain.NoMatchingObstaclesError{
			Location:       location,
			ObstacleType:   obstacleType,
			CurrentWeather: current,
			Suggestion:     suggestion,
		}
	}

	return &domain.CrossingReport{
		Location:            location,
		ObstacleType:        obstacleType,
		CurrentWeather:      current,
		EvaluationTimestamp: uc.now(),
		Evaluations:         evaluations,
	}, nil
}

// UpdateStatus - смена статуса миссии
func (uc *TerrainUseCase) UpdateStatus(status string) domain.StatusUpdate {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.status = status
	uc.logger.Info("Mission status updated", zap.String("status", status))
	return domain.StatusUpdate{Status: "updated", NewStatus: status}
}

func (uc *TerrainUseCase) Status() string {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.status
}
