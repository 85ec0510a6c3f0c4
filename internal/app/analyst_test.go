package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/app"
	"github.com/terrain-analyst/internal/config"
	"github.com/terrain-analyst/internal/repository/sqlite"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		KnowledgeBase: config.KnowledgeBaseConfig{Driver: driver},
		SQLite:        config.SQLiteConfig{Path: ":memory:"},
		Weather:       config.WeatherConfig{Provider: config.WeatherSimulated},
		Geocoder:      config.GeocoderConfig{Provider: config.GeocoderHash},
		Analyst:       config.AnalystConfig{Seed: 42},
	}
}

func TestBuild_InMemory(t *testing.T) {
	ctx := context.Background()
	a, err := app.Build(ctx, testConfig(config.KnowledgeBaseNone), zap.NewNop(), false)
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Redis)
	assert.Nil(t, a.Postgres)
	assert.Nil(t, a.SQLite)

	_, err = a.UseCase.AnalyzeTerrain(ctx, "alpine_meadow", "", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpine_meadow"}, a.Analyses.Locations())
}

func TestBuild_SQLiteKnowledgeBaseReceivesAnalyses(t *testing.T) {
	ctx := context.Background()
	a, err := app.Build(ctx, testConfig(config.KnowledgeBaseSQLite), zap.NewNop(), false)
	require.NoError(t, err)
	defer a.Close()
	require.NotNil(t, a.SQLite)

	snapshot, err := a.UseCase.AnalyzeTerrain(ctx, "alpine_meadow", "high", false)
	require.NoError(t, err)

	kb, err := sqlite.NewKnowledgeBase(ctx, a.SQLite, zap.NewNop())
	require.NoError(t, err)
	stored, err := kb.GetTerrain(ctx, "alpine_meadow")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, snapshot.TerrainTypes, stored.TerrainTypes)
	assert.Equal(t, "high", stored.Resolution)
}

func TestBuild_SeededAnalystsAgree(t *testing.T) {
	ctx := context.Background()
	first, err := app.Build(ctx, testConfig(config.KnowledgeBaseNone), zap.NewNop(), false)
	require.NoError(t, err)
	second, err := app.Build(ctx, testConfig(config.KnowledgeBaseNone), zap.NewNop(), false)
	require.NoError(t, err)

	a, err := first.UseCase.AnalyzeTerrain(ctx, "canyon", "", false)
	require.NoError(t, err)
	b, err := second.UseCase.AnalyzeTerrain(ctx, "canyon", "", false)
	require.NoError(t, err)

	assert.Equal(t, a.TerrainTypes, b.TerrainTypes)
	assert.Equal(t, a.Elevation, b.Elevation)
	assert.Equal(t, a.SoilType, b.SoilType)
}
