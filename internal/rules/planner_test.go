package rules

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/pkg/utils"
)

func TestTimeMultiplier(t *testing.T) {
	assert.Equal(t, 0.7, TimeMultiplier(domain.RouteEasy))
	assert.Equal(t, 1.0, TimeMultiplier(domain.RouteNormal))
	assert.Equal(t, 1.5, TimeMultiplier(domain.RouteHard))
	assert.Equal(t, 2.0, TimeMultiplier(domain.RouteExtreme))
	assert.Equal(t, 1.0, TimeMultiplier("leisurely"))
}

func TestDelayFactor_IsAdditive(t *testing.T) {
	assert.Zero(t, DelayFactor(domain.WeatherAverage{Temperature: 20, Visibility: 10}))

	all := domain.WeatherAverage{Temperature: -5, WindSpeed: 35, Precipitation: 25, Visibility: 2}
	assert.InDelta(t, 0.85, DelayFactor(all), 1e-9)

	hot := domain.WeatherAverage{Temperature: 36, Visibility: 10}
	assert.InDelta(t, 0.10, DelayFactor(hot), 1e-9)
}

func TestAverageWeather(t *testing.T) {
	a := &domain.WeatherSnapshot{Temperature: 10, WindSpeed: 20, Precipitation: 0, Visibility: 10}
	b := &domain.WeatherSnapshot{Temperature: 20, WindSpeed: 40, Precipitation: 30, Visibility: 4}

	avg := AverageWeather(a, b)

	assert.Equal(t, domain.WeatherAverage{Temperature: 15, WindSpeed: 30, Precipitation: 15, Visibility: 7}, avg)
	assert.Equal(t, domain.WeatherAverage{Temperature: 20, Visibility: 10}, AverageWeather(nil))
}

func TestWaypoints(t *testing.T) {
	start := domain.LonLat{-120, 35}
	end := domain.LonLat{-119, 36}
	r := NewRand(21)

	for i := 0; i < 20; i++ {
		wps := Waypoints(r, start, end)
		require.GreaterOrEqual(t, len(wps), 3)
		require.LessOrEqual(t, len(wps), 7)

		prev := start
		for j, wp := range wps {
			assert.Equal(t, j+1, wp.ID)
			ratio := float64(j+1) / float64(len(wps)+1)
			expected := utils.Lerp(start, end, ratio)
			assert.LessOrEqual(t, math.Abs(wp.Coordinates.Lon()-expected.Lon()), WaypointJitter+1e-6)
			assert.LessOrEqual(t, math.Abs(wp.Coordinates.Lat()-expected.Lat()), WaypointJitter+1e-6)
			assert.Equal(t, WalkingMinutes(prev, wp.Coordinates), wp.EstimatedTimeFromPrevious)
			prev = wp.Coordinates
		}
	}
}

func TestWalkingMinutes(t *testing.T) {
	a := domain.LonLat{0, 0}
	b := domain.LonLat{0, 0.027}
	// ~3.0 km at 3 km/h
	assert.InDelta(t, 60.0, WalkingMinutes(a, b), 0.2)
	assert.Zero(t, WalkingMinutes(a, a))
}

func TestSelectChallenges(t *testing.T) {
	r := NewRand(4)
	assert.Empty(t, SelectChallenges(r, nil))

	single := []domain.Obstacle{{Type: domain.ObstacleBoggyGround, Severity: domain.SeverityHigh}}
	got := SelectChallenges(r, single)
	require.Len(t, got, 1)
	assert.Equal(t, domain.TerrainChallenge{
		Type:        domain.ObstacleBoggyGround,
		Severity:    domain.SeverityHigh,
		Description: "Boggy ground with risk of sinking or becoming stuck",
		Mitigation:  "Probe ground before stepping, use walking sticks for stability",
	}, got[0])

	many := make([]domain.Obstacle, 6)
	for i := range many {
		many[i] = domain.Obstacle{Type: domain.AllObstacleTypes[i]}
	}
	for i := 0; i < 20; i++ {
		got := SelectChallenges(r, many)
		assert.GreaterOrEqual(t, len(got), 1)
		assert.LessOrEqual(t, len(got), 3)
	}
}

func TestChallengeDefaults(t *testing.T) {
	assert.Equal(t, "Challenging terrain feature", ChallengeDescription(domain.ObstacleGeneric))
	assert.Equal(t, "Proceed with caution", Mitigation(domain.ObstacleGeneric))
}

func TestRecommendEquipment(t *testing.T) {
	got := RecommendEquipment([]domain.TerrainChallenge{
		{Type: domain.ObstacleWaterCrossing},
		{Type: domain.ObstacleBoggyGround},
		{Type: domain.ObstacleGeneric},
	})

	assert.Equal(t, []string{
		"standard SAR kit",
		"communications equipment",
		"first aid supplies",
		"water-resistant boots",
		"trekking poles",
		"life vests",
		"mud boots",
		"extraction equipment",
	}, got)

	assert.Equal(t, baselineEquipment, RecommendEquipment(nil))
}

func TestSuggestObstacleType(t *testing.T) {
	candidates := []domain.ObstacleType{domain.ObstacleGeneric, domain.ObstacleSteepSlope, domain.ObstacleWaterCrossing}

	got, ok := SuggestObstacleType("water_crosing", candidates)
	assert.True(t, ok)
	assert.Equal(t, domain.ObstacleWaterCrossing, got)

	_, ok = SuggestObstacleType("lava", candidates)
	assert.False(t, ok)
}

func TestSample_Distinct(t *testing.T) {
	r := NewRand(8)
	items := []int{1, 2, 3, 4, 5}
	got := Sample(r, items, 3)
	require.Len(t, got, 3)
	seen := map[int]bool{}
	for _, v := range got {
		assert.False(t, seen[v])
		seen[v] = true
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items)
	assert.Len(t, Sample(r, items, 10), 5)
}
