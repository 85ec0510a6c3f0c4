package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/pkg/errors"
	"github.com/terrain-analyst/internal/repository/cache"
)

// getTestRedisClient creates a Redis client for testing
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}
	return client
}

func TestKnowledgeBase_RoundTrip(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	location := "test:kb:ridge_overlook"
	defer client.Del(ctx, "terrain:kb:"+location)

	kb := cache.NewKnowledgeBase(client, time.Minute, zap.NewNop())
	snapshot := &domain.TerrainSnapshot{
		Location:          location,
		Resolution:        "medium",
		TerrainTypes:      []domain.TerrainType{domain.TerrainMountain, domain.TerrainForest, domain.TerrainRiver},
		Elevation:         domain.ElevationRange{Min: 450, Max: 1420},
		Slope:             34,
		WaterBodies:       2,
		VegetationDensity: 0.82,
		SoilType:          domain.SoilRocky,
		AnalysisTimestamp: time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC),
		WeatherConditions: &domain.WeatherSnapshot{Temperature: -2, WindSpeed: 35, Precipitation: 12, Visibility: 4},
		Interactions: []domain.Interaction{
			{Type: domain.InteractionLandslideRisk, Description: "Rain increases the risk of landslides on steep slopes", Severity: domain.SeverityMedium},
		},
	}

	require.NoError(t, kb.UpdateTerrain(ctx, location, snapshot))

	got, err := kb.GetTerrain(ctx, location)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, snapshot.TerrainTypes, got.TerrainTypes)
	assert.Equal(t, snapshot.Elevation, got.Elevation)
	assert.Equal(t, snapshot.Interactions, got.Interactions)
	assert.True(t, snapshot.AnalysisTimestamp.Equal(got.AnalysisTimestamp))
	require.NotNil(t, got.WeatherConditions)
	assert.Equal(t, -2.0, got.WeatherConditions.Temperature)

	ttl, err := client.TTL(ctx, "terrain:kb:"+location).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestKnowledgeBase_Miss(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	kb := cache.NewKnowledgeBase(client, time.Minute, zap.NewNop())

	got, err := kb.GetTerrain(context.Background(), "test:kb:missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestKnowledgeBase_UnreachableRedis(t *testing.T) {
	// порт 1 закрыт: соединение отклоняется без настоящего Redis
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	kb := cache.NewKnowledgeBase(client, time.Hour, zap.NewNop())
	ctx := context.Background()

	err := kb.UpdateTerrain(ctx, "north_ridge", &domain.TerrainSnapshot{Location: "north_ridge"})
	assert.ErrorIs(t, err, errors.ErrCacheError)

	_, err = kb.GetTerrain(ctx, "north_ridge")
	assert.ErrorIs(t, err, errors.ErrCacheError)
}
