package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/pkg/utils"
	"github.com/terrain-analyst/internal/rules"
)

// GeneratePath plans a route between two locations, analyzing and
// identifying obstacles for either endpoint when missing.
func (uc *TerrainUseCase) GeneratePath(ctx context.Context, start, end, difficulty string, includeWeather bool) (*domain.PathPlan, error) {
	if difficulty == "" {
		difficulty = domain.RouteNormal
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	for _, location := range []string{start, end} {
		if _, err := uc.ensureAnalysis(ctx, location, includeWeather); err != nil {
			return nil, err
		}
	}
	var pool []domain.Obstacle
	for _, location := range []string{start, end} {
		obstacles, err := uc.ensureObstacles(ctx, location, includeWeather)
		if err != nil {
			return nil, err
		}
		pool = append(pool, obstacles...)
	}

	from, err := uc.geocoder.Locate(ctx, start)
	if err != nil {
		return nil, err
	}
	to, err := uc.geocoder.Locate(ctx, end)
	if err != nil {
		return nil, err
	}

	distance := utils.DistanceKm(from, to)
	baseTime := distance * rules.TimeMultiplier(difficulty)
	waypoints := rules.Waypoints(uc.rng, from, to)

	plan := &domain.PathPlan{
		Start:      start,
		End:        end,
		Difficulty: difficulty,
		DistanceKm: domain.Round(distance, 2),
		Waypoints:  waypoints,
	}

	delay := 0.0
	if includeWeather {
		startWeather, err := uc.weather.GetCurrentConditions(ctx, start)
		if err != nil {
			return nil, err
		}
		endWeather, err := uc.weather.GetCurrentConditions(ctx, end)
		if err != nil {
			return nil, err
		}
		// Риски оцениваются по начальной точке
		assessment, err := uc.weather.AssessWeatherRisk(ctx, start)
		if err != nil {
			return nil, err
		}

		avg := rules.AverageWeather(startWeather, endWeather)
		delay = baseTime * rules.DelayFactor(avg)
		plan.WeatherConditions = &domain.PathWeather{Start: startWeather, End: endWeather, Average: avg}
		plan.WeatherRisks = assessment.Risks
	}

	plan.BaseTimeHours = domain.Round(baseTime, 1)
	plan.WeatherDelayHours = domain.Round(delay, 1)
	plan.EstimatedTimeHours = domain.Round(baseTime+delay, 1)
	plan.TerrainChallenges = rules.SelectChallenges(uc.rng, pool)
	plan.RecommendedEquipment = rules.RecommendEquipment(plan.TerrainChallenges)
	plan.GeneratedTimestamp = uc.now()

	uc.logger.Info("Path generated",
		zap.String("start", start),
		zap.String("end", end),
		zap.String("difficulty", difficulty),
		zap.Float64("distance_km", plan.DistanceKm),
		zap.Int("waypoints", len(waypoints)))
	return plan, nil
}
