package weather

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/rules"
)

type reading struct {
	snapshot  domain.WeatherSnapshot
	fetchedAt time.Time
}

// SimulatedService - генератор правдоподобной погоды для демо и тестов.
// A location keeps its conditions for the refresh window, then draws new ones.
type SimulatedService struct {
	mu       sync.Mutex
	rng      rules.Rand
	refresh  time.Duration
	now      func() time.Time
	readings map[string]reading
	logger   *zap.Logger
}

func NewSimulatedService(rng rules.Rand, refresh time.Duration, logger *zap.Logger) *SimulatedService {
	return &SimulatedService{
		rng:      rng,
		refresh:  refresh,
		now:      time.Now,
		readings: make(map[string]reading),
		logger:   logger,
	}
}

func (s *SimulatedService) GetCurrentConditions(_ context.Context, location string) (*domain.WeatherSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	if r, ok := s.readings[location]; ok && (s.refresh <= 0 || now.Sub(r.fetchedAt) < s.refresh) {
		snap := r.snapshot
		return &snap, nil
	}

	snap := s.draw(location, now)
	s.readings[location] = reading{snapshot: snap, fetchedAt: now}
	s.logger.Debug("Simulated weather drawn",
		zap.String("location", location),
		zap.Float64("temperature", snap.Temperature),
		zap.Float64("precipitation", snap.Precipitation))
	return &snap, nil
}

func (s *SimulatedService) AssessWeatherRisk(ctx context.Context, location string) (*domain.WeatherRiskAssessment, error) {
	w, err := s.GetCurrentConditions(ctx, location)
	if err != nil {
		return nil, err
	}
	return &domain.WeatherRiskAssessment{
		Location:  location,
		Risks:     AssessRisks(w),
		Timestamp: w.Timestamp,
	}, nil
}

// SetConditions pins the conditions for location until the next refresh.
func (s *SimulatedService) SetConditions(location string, w domain.WeatherSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	w.Location = location
	if w.Timestamp.IsZero() {
		w.Timestamp = now
	}
	s.readings[location] = reading{snapshot: w, fetchedAt: now}
}

func (s *SimulatedService) draw(location string, now time.Time) domain.WeatherSnapshot {
	w := domain.WeatherSnapshot{
		Location:      location,
		Temperature:   domain.Round(rules.Uniform(s.rng, -10, 40), 1),
		WindSpeed:     domain.Round(rules.Uniform(s.rng, 0, 60), 1),
		Precipitation: domain.Round(rules.Uniform(s.rng, 0, 50), 1),
		Visibility:    domain.Round(rules.Uniform(s.rng, 0.5, 15), 1),
		Humidity:      domain.Round(rules.Uniform(s.rng, 20, 100), 1),
		Timestamp:     now,
	}
	w.Conditions = describe(&w)
	return w
}

// describe - краткое текстовое описание условий
func describe(w *domain.WeatherSnapshot) string {
	switch {
	case w.Precipitation > 30 && w.WindSpeed > 40:
		return "storm"
	case w.Precipitation > 5 && w.Temperature < 0:
		return "snow"
	case w.Precipitation > 5:
		return "rain"
	case w.Visibility < 3:
		return "fog"
	case w.WindSpeed > 40:
		return "windy"
	default:
		return "clear"
	}
}
