package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrain-analyst/internal/domain"
)

func TestAnalyzeInteractions_MountainRiverRain(t *testing.T) {
	terrain := terrainWith(domain.TerrainMountain, domain.TerrainRiver, domain.TerrainPlains)
	weather := &domain.WeatherSnapshot{Temperature: 10, WindSpeed: 10, Precipitation: 35, Visibility: 8}

	got := AnalyzeInteractions(terrain, weather)

	require.Len(t, got, 2)
	assert.Equal(t, domain.Interaction{
		Type:        domain.InteractionLandslideRisk,
		Description: "Rain increases the risk of landslides on steep slopes",
		Severity:    domain.SeverityHigh,
	}, got[0])
	assert.Equal(t, domain.InteractionRisingWater, got[1].Type)
	assert.Equal(t, domain.SeverityMedium, got[1].Severity)
}

func TestAnalyzeInteractions_Severities(t *testing.T) {
	tests := []struct {
		name     string
		terrain  func() *domain.TerrainSnapshot
		weather  domain.WeatherSnapshot
		want     domain.InteractionType
		severity domain.Severity
	}{
		{
			name:     "rising water high above 40mm",
			terrain:  func() *domain.TerrainSnapshot { return terrainWith(domain.TerrainRiver) },
			weather:  domain.WeatherSnapshot{Temperature: 10, Precipitation: 41, Visibility: 10},
			want:     domain.InteractionRisingWater,
			severity: domain.SeverityHigh,
		},
		{
			name: "slippery clay",
			terrain: func() *domain.TerrainSnapshot {
				t := terrainWith(domain.TerrainPlains)
				t.SoilType = domain.SoilClay
				return t
			},
			weather:  domain.WeatherSnapshot{Temperature: 10, Precipitation: 11, Visibility: 10},
			want:     domain.InteractionSlipperyGround,
			severity: domain.SeverityMedium,
		},
		{
			name: "ridgelines above 1000m",
			terrain: func() *domain.TerrainSnapshot {
				t := terrainWith(domain.TerrainPlains)
				t.Elevation.Max = 1200
				return t
			},
			weather:  domain.WeatherSnapshot{Temperature: 10, WindSpeed: 31, Visibility: 10},
			want:     domain.InteractionDangerousRidgelines,
			severity: domain.SeverityHigh,
		},
		{
			name: "icy surfaces on steep ground",
			terrain: func() *domain.TerrainSnapshot {
				t := terrainWith(domain.TerrainPlains)
				t.Slope = 25
				return t
			},
			weather:  domain.WeatherSnapshot{Temperature: -3, Visibility: 10},
			want:     domain.InteractionSlipperySurfaces,
			severity: domain.SeverityHigh,
		},
		{
			name:     "desert heat",
			terrain:  func() *domain.TerrainSnapshot { return terrainWith(domain.TerrainDesert) },
			weather:  domain.WeatherSnapshot{Temperature: 40, Visibility: 10},
			want:     domain.InteractionExtremeHeat,
			severity: domain.SeverityExtreme,
		},
		{
			name: "poor visibility on gentle slope",
			terrain: func() *domain.TerrainSnapshot {
				t := terrainWith(domain.TerrainPlains)
				t.Slope = 30
				return t
			},
			weather:  domain.WeatherSnapshot{Temperature: 10, Visibility: 4},
			want:     domain.InteractionReducedVisibility,
			severity: domain.SeverityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.weather
			got := AnalyzeInteractions(tt.terrain(), &w)
			var found *domain.Interaction
			for i := range got {
				if got[i].Type == tt.want {
					found = &got[i]
				}
			}
			require.NotNil(t, found, "expected %s in %v", tt.want, got)
			assert.Equal(t, tt.severity, found.Severity)
		})
	}
}

func TestAnalyzeInteractions_DeclarationOrder(t *testing.T) {
	terrain := terrainWith(domain.TerrainRiver, domain.TerrainForest, domain.TerrainMountain)
	terrain.Elevation.Max = 1400
	weather := &domain.WeatherSnapshot{Temperature: -5, WindSpeed: 45, Precipitation: 15, Visibility: 2}

	got := AnalyzeInteractions(terrain, weather)

	var types []domain.InteractionType
	for _, i := range got {
		types = append(types, i.Type)
	}
	assert.Equal(t, []domain.InteractionType{
		domain.InteractionLandslideRisk,
		domain.InteractionRisingWater,
		domain.InteractionFallingBranches,
		domain.InteractionDangerousRidgelines,
		domain.InteractionIceFormation,
		domain.InteractionSlipperySurfaces,
		domain.InteractionReducedVisibility,
	}, types)
}

func TestAnalyzeInteractions_NoWeather(t *testing.T) {
	assert.Empty(t, AnalyzeInteractions(terrainWith(domain.TerrainMountain), nil))
	assert.Empty(t, AnalyzeInteractions(terrainWith(domain.TerrainPlains), calmWeather()))
}
