package repository

import (
	"context"

	"github.com/terrain-analyst/internal/domain"
)

// WeatherService - источник погодных условий
type WeatherService interface {
	GetCurrentConditions(ctx context.Context, location string) (*domain.WeatherSnapshot, error)
	AssessWeatherRisk(ctx context.Context, location string) (*domain.WeatherRiskAssessment, error)
}

// Geocoder переводит идентификатор локации в координаты
type Geocoder interface {
	Locate(ctx context.Context, location string) (domain.LonLat, error)
}

// TerrainSurveyor формирует атрибуты местности для локации
type TerrainSurveyor interface {
	Survey(ctx context.Context, location, resolution string) (*domain.TerrainSnapshot, error)
}
