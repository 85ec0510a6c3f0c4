package rules

import "github.com/terrain-analyst/internal/domain"

// Context - входные данные для всех таблиц правил.
// Weather is nil when the caller excluded weather.
type Context struct {
	Terrain *domain.TerrainSnapshot
	Weather *domain.WeatherSnapshot
}

func (c Context) HasWeather() bool {
	return c.Weather != nil
}

func (c Context) Has(t domain.TerrainType) bool {
	return c.Terrain != nil && c.Terrain.HasType(t)
}
