package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/terrain-analyst/internal/domain"
)

// MockWeatherService - мок погодного сервиса
type MockWeatherService struct {
	mock.Mock
}

func (m *MockWeatherService) GetCurrentConditions(ctx context.Context, location string) (*domain.WeatherSnapshot, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	w := *args.Get(0).(*domain.WeatherSnapshot)
	return &w, args.Error(1)
}

func (m *MockWeatherService) AssessWeatherRisk(ctx context.Context, location string) (*domain.WeatherRiskAssessment, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeatherRiskAssessment), args.Error(1)
}

// MockGeocoder - мок геокодера
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Locate(ctx context.Context, location string) (domain.LonLat, error) {
	args := m.Called(ctx, location)
	return args.Get(0).(domain.LonLat), args.Error(1)
}

// MockSurveyor returns a copy of the configured snapshot on every call.
type MockSurveyor struct {
	mock.Mock
}

func (m *MockSurveyor) Survey(ctx context.Context, location, resolution string) (*domain.TerrainSnapshot, error) {
	args := m.Called(ctx, location, resolution)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	s := *args.Get(0).(*domain.TerrainSnapshot)
	s.Location = location
	s.Resolution = resolution
	return &s, args.Error(1)
}

// MockKnowledgeBase - мок базы знаний
type MockKnowledgeBase struct {
	mock.Mock
}

func (m *MockKnowledgeBase) UpdateTerrain(ctx context.Context, location string, snapshot *domain.TerrainSnapshot) error {
	args := m.Called(ctx, location, snapshot)
	return args.Error(0)
}

func (m *MockKnowledgeBase) GetTerrain(ctx context.Context, location string) (*domain.TerrainSnapshot, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TerrainSnapshot), args.Error(1)
}

// MockArchive - база знаний с историей
type MockArchive struct {
	MockKnowledgeBase
}

func (m *MockArchive) History(ctx context.Context, location string, limit int) ([]domain.TerrainSnapshot, error) {
	args := m.Called(ctx, location, limit)
	history, _ := args.Get(0).([]domain.TerrainSnapshot)
	return history, args.Error(1)
}

func (m *MockArchive) LocationsWithType(ctx context.Context, terrainType domain.TerrainType) ([]string, error) {
	args := m.Called(ctx, terrainType)
	locations, _ := args.Get(0).([]string)
	return locations, args.Error(1)
}

var surveyTime = time.Date(2026, 4, 12, 9, 0, 0, 0, time.UTC)

func surveyed(types ...domain.TerrainType) *domain.TerrainSnapshot {
	return &domain.TerrainSnapshot{
		TerrainTypes:      types,
		Elevation:         domain.ElevationRange{Min: 400, Max: 1350},
		Slope:             25,
		WaterBodies:       2,
		VegetationDensity: 0.3,
		SoilType:          domain.SoilClay,
		AnalysisTimestamp: surveyTime,
	}
}

func noRisks() *domain.WeatherRiskAssessment {
	return &domain.WeatherRiskAssessment{Risks: []domain.WeatherRisk{}}
}
