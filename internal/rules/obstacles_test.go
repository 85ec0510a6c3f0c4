package rules

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrain-analyst/internal/domain"
)

func TestGenerate_GenericObstacleAlwaysFirst(t *testing.T) {
	gen := NewObstacleGenerator(NewRand(1))

	obstacles := gen.Generate(testCenter, terrainWith(domain.TerrainPlains, domain.TerrainUrban, domain.TerrainTundra), nil)

	require.Len(t, obstacles, 1)
	generic := obstacles[0]
	assert.Equal(t, domain.ObstacleGeneric, generic.Type)
	assert.Equal(t, domain.SeverityMedium, generic.Severity)
	assert.Equal(t, "General terrain challenge", generic.Details.Description)
	require.NotNil(t, generic.Details.AreaSqMeters)
	assert.GreaterOrEqual(t, *generic.Details.AreaSqMeters, 50.0)
	assert.LessOrEqual(t, *generic.Details.AreaSqMeters, 500.0)
}

func TestGenerate_TerrainRules(t *testing.T) {
	tests := []struct {
		name     string
		terrain  *domain.TerrainSnapshot
		expected []domain.ObstacleType
	}{
		{
			name:     "mountain yields steep slope",
			terrain:  terrainWith(domain.TerrainMountain, domain.TerrainPlains, domain.TerrainUrban),
			expected: []domain.ObstacleType{domain.ObstacleGeneric, domain.ObstacleSteepSlope},
		},
		{
			name:     "river yields water crossing",
			terrain:  terrainWith(domain.TerrainRiver, domain.TerrainPlains, domain.TerrainUrban),
			expected: []domain.ObstacleType{domain.ObstacleGeneric, domain.ObstacleWaterCrossing},
		},
		{
			name:    "desert and swamp",
			terrain: terrainWith(domain.TerrainDesert, domain.TerrainSwamp, domain.TerrainUrban),
			expected: []domain.ObstacleType{
				domain.ObstacleGeneric,
				domain.ObstacleSandyTerrain,
				domain.ObstacleBoggyGround,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewObstacleGenerator(NewRand(7))
			obstacles := gen.Generate(testCenter, tt.terrain, nil)
			assert.Equal(t, tt.expected, typesOf(obstacles))
		})
	}
}

func TestGenerate_DenseVegetationThreshold(t *testing.T) {
	gen := NewObstacleGenerator(NewRand(3))
	terrain := terrainWith(domain.TerrainPlains)

	terrain.VegetationDensity = 0.7
	assert.Nil(t, find(gen.Generate(testCenter, terrain, nil), domain.ObstacleDenseVegetation))

	terrain.VegetationDensity = 0.71
	veg := find(gen.Generate(testCenter, terrain, nil), domain.ObstacleDenseVegetation)
	require.NotNil(t, veg)
	assert.Contains(t, []string{"thick brush", "dense forest", "thorny bushes"}, veg.Details.VegetationType)
}

func TestGenerate_MountainAlwaysHasSteepSlope(t *testing.T) {
	r := NewRand(11)
	gen := NewObstacleGenerator(r)
	for i := 0; i < 50; i++ {
		terrain := terrainWith(domain.TerrainMountain, Pick(r, domain.AllTerrainTypes))
		terrain.VegetationDensity = r.Float64()
		assert.NotNil(t, find(gen.Generate(testCenter, terrain, calmWeather()), domain.ObstacleSteepSlope))
	}
}

func TestGenerate_WeatherRules(t *testing.T) {
	gen := NewObstacleGenerator(NewRand(5))

	t.Run("heavy precipitation yields extreme flash flood", func(t *testing.T) {
		w := calmWeather()
		w.Precipitation = 31
		flood := find(gen.Generate(testCenter, terrainWith(domain.TerrainPlains), w), domain.ObstacleFlashFlood)
		require.NotNil(t, flood)
		assert.Equal(t, domain.SeverityExtreme, flood.Severity)
		assert.Equal(t, "heavy rainfall", flood.Details.CausedBy)
	})

	t.Run("weather ignored when excluded", func(t *testing.T) {
		obstacles := gen.Generate(testCenter, terrainWith(domain.TerrainPlains), nil)
		assert.Equal(t, []domain.ObstacleType{domain.ObstacleGeneric}, typesOf(obstacles))
	})

	t.Run("low visibility uses observed visibility", func(t *testing.T) {
		w := calmWeather()
		w.Visibility = 2.5
		w.Temperature = 10
		o := find(gen.Generate(testCenter, terrainWith(domain.TerrainPlains), w), domain.ObstacleLowVisibility)
		require.NotNil(t, o)
		assert.Equal(t, 2500.0, *o.Details.VisibilityMeters)
		assert.Equal(t, "fog", o.Details.CausedBy)

		w.Temperature = 15
		o = find(gen.Generate(testCenter, terrainWith(domain.TerrainPlains), w), domain.ObstacleLowVisibility)
		require.NotNil(t, o)
		assert.Equal(t, "haze", o.Details.CausedBy)
	})

	t.Run("wind hazard risk depends on forest", func(t *testing.T) {
		w := calmWeather()
		w.WindSpeed = 55

		o := find(gen.Generate(testCenter, terrainWith(domain.TerrainForest), w), domain.ObstacleWindHazard)
		require.NotNil(t, o)
		assert.Equal(t, 55.0, *o.Details.WindSpeedKph)
		assert.Equal(t, "falling branches", o.Details.Risk)

		o = find(gen.Generate(testCenter, terrainWith(domain.TerrainPlains), w), domain.ObstacleWindHazard)
		require.NotNil(t, o)
		assert.Equal(t, "reduced stability", o.Details.Risk)
	})
}

func TestGenerate_CoordinatesNearCenter(t *testing.T) {
	gen := NewObstacleGenerator(NewRand(9))
	terrain := terrainWith(domain.TerrainMountain, domain.TerrainRiver, domain.TerrainDesert)

	for _, o := range gen.Generate(testCenter, terrain, nil) {
		assert.LessOrEqual(t, math.Abs(o.Coordinates.Lon()-testCenter.Lon()), ObstacleJitter+1e-6)
		assert.LessOrEqual(t, math.Abs(o.Coordinates.Lat()-testCenter.Lat()), ObstacleJitter+1e-6)
		assert.Equal(t, domain.Round(o.Coordinates.Lon(), 6), o.Coordinates.Lon())
	}
}

func TestCreate_UnknownType(t *testing.T) {
	gen := NewObstacleGenerator(NewRand(1))

	_, err := gen.Create("lava_field", testCenter)

	var unknown *domain.UnknownObstacleTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Unknown obstacle type: lava_field", err.Error())
	assert.False(t, KnownObstacleType("lava_field"))
	assert.True(t, KnownObstacleType(domain.ObstacleWindHazard))
}

func TestObstacleRules_EveryRuleHasTemplate(t *testing.T) {
	for _, rule := range ObstacleRules {
		assert.True(t, KnownObstacleType(rule.Type), "rule %s", rule.Type)
	}
	for _, ot := range domain.AllObstacleTypes {
		assert.True(t, KnownObstacleType(ot), "type %s", ot)
	}
}

func TestGenerate_NilTerrain(t *testing.T) {
	gen := NewObstacleGenerator(NewRand(1))

	var obstacles []domain.Obstacle
	require.NotPanics(t, func() {
		obstacles = gen.Generate(testCenter, nil, nil)
	})
	require.Len(t, obstacles, 1)
	assert.Equal(t, domain.ObstacleGeneric, obstacles[0].Type)
}
