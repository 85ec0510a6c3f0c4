package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/usecase"
	"github.com/terrain-analyst/internal/usecase/dto"
)

func TestDispatcher_Routing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.expect("river", center, surveyed(domain.TerrainRiver), &domain.WeatherSnapshot{Temperature: 3, Precipitation: 25, Visibility: 10})
	d := usecase.NewDispatcher(f.uc, zap.NewNop())

	t.Run("type discriminant", func(t *testing.T) {
		out := d.Dispatch(ctx, []byte(`{"type":"analyze_terrain","location":"river","resolution":"low"}`))
		snapshot, ok := out.(*domain.TerrainSnapshot)
		require.True(t, ok, "got %T", out)
		assert.Equal(t, "low", snapshot.Resolution)
		assert.NotNil(t, snapshot.WeatherConditions)
	})

	t.Run("operation key", func(t *testing.T) {
		out := d.Dispatch(ctx, []byte(`{"identify_obstacles":true,"location":"river","include_weather":false}`))
		report, ok := out.(*domain.ObstacleReport)
		require.True(t, ok, "got %T", out)
		assert.False(t, report.WeatherFactored)
	})

	t.Run("crossing", func(t *testing.T) {
		out := d.Dispatch(ctx, []byte(`{"type":"evaluate_crossing_difficulty","location":"river","obstacle_type":"water_crossing"}`))
		report, ok := out.(*domain.CrossingReport)
		require.True(t, ok, "got %T", out)
		assert.Equal(t, domain.TierExtreme, report.Evaluations[0].DifficultyRating)
	})

	t.Run("crossing without match", func(t *testing.T) {
		out := d.Dispatch(ctx, []byte(`{"type":"evaluate_crossing_difficulty","location":"river","obstacle_type":"sandy_terrain"}`))
		result, ok := out.(*dto.NoMatchResult)
		require.True(t, ok, "got %T", out)
		assert.Equal(t, "No matching obstacles found", result.Error)
		assert.Equal(t, dto.RecommendIdentifyFirst, result.Recommendation)
		assert.Equal(t, domain.ObstacleSandyTerrain, result.ObstacleType)
		assert.NotNil(t, result.CurrentWeather)
	})

	t.Run("map with unsupported format", func(t *testing.T) {
		out := d.Dispatch(ctx, []byte(`{"type":"get_terrain_map","location":"river","format":"shapefile"}`))
		assert.Equal(t, &dto.ErrorResult{Error: "Unsupported format: shapefile"}, out)
	})

	t.Run("map", func(t *testing.T) {
		out := d.Dispatch(ctx, []byte(`{"get_terrain_map":{},"location":"river"}`))
		fc, ok := out.(*domain.FeatureCollection)
		require.True(t, ok, "got %T", out)
		assert.NotEmpty(t, fc.Features)
	})
}

func TestDispatcher_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	d := usecase.NewDispatcher(f.uc, zap.NewNop())

	t.Run("unknown request type", func(t *testing.T) {
		out := d.Dispatch(ctx, []byte(`{"location":"river"}`))
		assert.Equal(t, &dto.ErrorResult{Error: "Unknown request type"}, out)

		out = d.Dispatch(ctx, []byte(`{"type":"launch_drone"}`))
		assert.Equal(t, &dto.ErrorResult{Error: "Unknown request type"}, out)
	})

	t.Run("malformed body", func(t *testing.T) {
		out := d.Dispatch(ctx, []byte(`[1,2,3]`))
		assert.Equal(t, &dto.ErrorResult{Error: "Invalid request parameters"}, out)
	})

	t.Run("missing required parameter", func(t *testing.T) {
		out := d.Dispatch(ctx, []byte(`{"type":"generate_path","start":"a"}`))
		assert.Equal(t, &dto.ErrorResult{Error: "Invalid request parameters: end=required"}, out)
	})

	t.Run("monitor without analysis", func(t *testing.T) {
		out := d.Dispatch(ctx, []byte(`{"monitor_terrain_changes":true,"location":"nowhere"}`))
		assert.Equal(t, &dto.MissingAnalysisResult{
			Location:       "nowhere",
			Error:          "No prior analysis available",
			Recommendation: dto.RecommendAnalyzeFirst,
		}, out)
	})

	t.Run("panic is reported", func(t *testing.T) {
		f.surveyor.On("Survey", mock.Anything, "cursed", mock.Anything).
			Run(func(mock.Arguments) { panic("survey exploded") })

		out := d.Dispatch(ctx, []byte(`{"type":"analyze_terrain","location":"cursed"}`))
		assert.Equal(t, &dto.ErrorResult{Error: "survey exploded"}, out)
	})
}
