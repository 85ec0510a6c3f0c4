package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrain-analyst/internal/domain"
)

func changeTypes(changes []domain.TerrainChange) []domain.ChangeType {
	out := make([]domain.ChangeType, 0, len(changes))
	for _, c := range changes {
		out = append(out, c.Type)
	}
	return out
}

func TestDetectChanges(t *testing.T) {
	tests := []struct {
		name  string
		types []domain.TerrainType
		old   domain.WeatherSnapshot
		cur   domain.WeatherSnapshot
		want  []domain.ChangeType
	}{
		{
			name: "rainfall",
			old:  domain.WeatherSnapshot{Temperature: 10, Precipitation: 5},
			cur:  domain.WeatherSnapshot{Temperature: 10, Precipitation: 26},
			want: []domain.ChangeType{domain.ChangeIncreasedWaterLevels},
		},
		{
			name: "wind without forest",
			old:  domain.WeatherSnapshot{Temperature: 10, WindSpeed: 5},
			cur:  domain.WeatherSnapshot{Temperature: 10, WindSpeed: 30},
			want: []domain.ChangeType{},
		},
		{
			name:  "wind in forest",
			types: []domain.TerrainType{domain.TerrainForest},
			old:   domain.WeatherSnapshot{Temperature: 10, WindSpeed: 5},
			cur:   domain.WeatherSnapshot{Temperature: 10, WindSpeed: 21},
			want:  []domain.ChangeType{domain.ChangeFallenTrees},
		},
		{
			name: "thaw",
			old:  domain.WeatherSnapshot{Temperature: -2},
			cur:  domain.WeatherSnapshot{Temperature: 6},
			want: []domain.ChangeType{domain.ChangeSnowMelt},
		},
		{
			name: "freeze",
			old:  domain.WeatherSnapshot{Temperature: 2},
			cur:  domain.WeatherSnapshot{Temperature: -1},
			want: []domain.ChangeType{domain.ChangeFreezingConditions},
		},
		{
			name: "zero degrees fires neither temperature rule",
			old:  domain.WeatherSnapshot{Temperature: 0},
			cur:  domain.WeatherSnapshot{Temperature: -10},
			want: []domain.ChangeType{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terrain := terrainWith(append(tt.types, domain.TerrainPlains)...)
			old := tt.old
			terrain.WeatherConditions = &old
			cur := tt.cur

			got := DetectChanges(terrain, &cur)
			assert.Equal(t, tt.want, changeTypes(got))
		})
	}
}

func TestDetectChanges_WithoutAnalysisWeather(t *testing.T) {
	got := DetectChanges(terrainWith(domain.TerrainForest), &domain.WeatherSnapshot{Precipitation: 100})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDetectChanges_DoesNotShareRuleSlices(t *testing.T) {
	terrain := terrainWith(domain.TerrainPlains)
	terrain.WeatherConditions = &domain.WeatherSnapshot{Temperature: 2}

	got := DetectChanges(terrain, &domain.WeatherSnapshot{Temperature: -2})
	require.Len(t, got, 1)
	got[0].AffectedAreas[0] = "changed"

	assert.Equal(t, "paths", ChangeRules[3].Change.AffectedAreas[0])
}
