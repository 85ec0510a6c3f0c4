package export

import (
	"fmt"
	"strings"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/pkg/errors"
	"github.com/terrain-analyst/internal/rules"
)

const (
	FormatGeoJSON = "geojson"

	// AreaHalfWidth - половина стороны квадрата области анализа, градусы
	AreaHalfWidth = 0.05
	// ImpactJitter spreads weather impact markers so they do not stack.
	ImpactJitter = 0.02

	FeatureWeatherMarker = "weather_marker"
	FeatureWeatherImpact = "weather_impact"
)

// MapInput - всё, что нужно для экспорта карты одной локации
type MapInput struct {
	Center         domain.LonLat
	Snapshot       *domain.TerrainSnapshot
	Obstacles      []domain.Obstacle
	IncludeWeather bool
}

// Render exports in the requested format (case-insensitive).
func Render(r rules.Rand, format string, in MapInput) (*domain.FeatureCollection, error) {
	if strings.ToLower(format) != FormatGeoJSON {
		return nil, errors.UnsupportedFormat(format)
	}
	return GeoJSON(r, in), nil
}

// GeoJSON builds the terrain area polygon, one point per obstacle and,
// when weather is included and was analyzed, the weather overlay.
func GeoJSON(r rules.Rand, in MapInput) *domain.FeatureCollection {
	fc := domain.NewFeatureCollection()
	snap := in.Snapshot

	soil := string(snap.SoilType)
	if soil == "" {
		soil = "unknown"
	}
	fc.Add(domain.SquareFeature(in.Center, AreaHalfWidth, map[string]any{
		"name":               fmt.Sprintf("Terrain area: %s", snap.Location),
		"terrain_types":      snap.TerrainTypes,
		"elevation_range":    []int{snap.Elevation.Min, snap.Elevation.Max},
		"vegetation_density": snap.VegetationDensity,
		"soil_type":          soil,
	}))

	for i, o := range in.Obstacles {
		props := o.Details.Fields()
		props["name"] = fmt.Sprintf("Obstacle %d", i+1)
		props["type"] = o.Type
		props["severity"] = o.Severity
		fc.Add(domain.PointFeature(o.Coordinates, props))
	}

	if !in.IncludeWeather || !snap.WeatherIncluded() {
		return fc
	}

	w := snap.WeatherConditions
	fc.Add(domain.PointFeature(in.Center, map[string]any{
		"name":          "Weather Conditions",
		"temperature":   w.Temperature,
		"wind_speed":    w.WindSpeed,
		"precipitation": w.Precipitation,
		"visibility":    w.Visibility,
		"feature_type":  FeatureWeatherMarker,
	}))

	for i, interaction := range snap.Interactions {
		fc.Add(domain.PointFeature(rules.Jitter(r, in.Center, ImpactJitter), map[string]any{
			"name":         fmt.Sprintf("Weather Impact %d", i+1),
			"type":         interaction.Type,
			"description":  interaction.Description,
			"severity":     interaction.Severity,
			"feature_type": FeatureWeatherImpact,
		}))
	}
	return fc
}
