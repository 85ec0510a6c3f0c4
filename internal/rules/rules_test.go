package rules

import "github.com/terrain-analyst/internal/domain"

var testCenter = domain.LonLat{-118.0, 39.0}

func terrainWith(types ...domain.TerrainType) *domain.TerrainSnapshot {
	return &domain.TerrainSnapshot{
		Location:          "test_area",
		Resolution:        domain.DefaultResolution,
		TerrainTypes:      types,
		Elevation:         domain.ElevationRange{Min: 400, Max: 900},
		Slope:             10,
		VegetationDensity: 0.3,
		SoilType:          domain.SoilLoam,
	}
}

func calmWeather() *domain.WeatherSnapshot {
	return &domain.WeatherSnapshot{Temperature: 20, WindSpeed: 5, Precipitation: 0, Visibility: 10}
}

func typesOf(obstacles []domain.Obstacle) []domain.ObstacleType {
	out := make([]domain.ObstacleType, 0, len(obstacles))
	for _, o := range obstacles {
		out = append(out, o.Type)
	}
	return out
}

func find(obstacles []domain.Obstacle, t domain.ObstacleType) *domain.Obstacle {
	for i := range obstacles {
		if obstacles[i].Type == t {
			return &obstacles[i]
		}
	}
	return nil
}
