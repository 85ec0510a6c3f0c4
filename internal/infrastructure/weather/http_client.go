package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/config"
	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/pkg/errors"
)

// aggregatorSnapshot - ответ сервиса агрегации погоды (GET /api/v1/weather/current)
type aggregatorSnapshot struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperatureC"`
	Humidity    float64   `json:"humidityPercent"`
	WindSpeedMS float64   `json:"windSpeed"`
	PrecipMM    float64   `json:"precipMm"`
	Condition   string    `json:"condition"`
}

// HTTPClient - клиент внешнего сервиса погоды с повторами и circuit breaker
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	country    string
	backoff    BackoffConfig
	circuit    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

func NewHTTPClient(cfg *config.WeatherConfig, logger *zap.Logger) *HTTPClient {
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weather",
		MaxRequests: cfg.BreakerHalfOpens,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &HTTPClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		country:    cfg.Country,
		backoff: BackoffConfig{
			MaxRetries:      cfg.MaxRetries,
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     2 * time.Second,
		},
		circuit: cb,
		logger:  logger,
	}
}

func (c *HTTPClient) GetCurrentConditions(ctx context.Context, location string) (*domain.WeatherSnapshot, error) {
	build := func(ctx context.Context) (*http.Request, error) {
		q := url.Values{}
		q.Set("city", location)
		q.Set("country", c.country)
		return http.NewRequestWithContext(ctx, http.MethodGet,
			fmt.Sprintf("%s/api/v1/weather/current?%s", c.baseURL, q.Encode()), nil)
	}

	c.logger.Debug("Calling weather service", zap.String("location", location))

	resp, err := doWithResilience(ctx, c.httpClient, c.backoff, c.circuit, build)
	if err != nil {
		c.logger.Error("Weather request failed",
			zap.String("location", location),
			zap.Error(err))
		return nil, errors.ErrWeatherUnavailable.WithDetails(map[string]interface{}{
			"location": location,
			"cause":    err.Error(),
		})
	}
	defer resp.Body.Close()

	var payload aggregatorSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Error("Failed to decode weather response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	ts := payload.Timestamp.UTC()
	if payload.Timestamp.IsZero() {
		ts = time.Now().UTC()
	}
	return &domain.WeatherSnapshot{
		Location:      location,
		Temperature:   payload.Temperature,
		WindSpeed:     domain.Round(payload.WindSpeedMS*3.6, 1),
		Precipitation: payload.PrecipMM,
		Visibility:    visibilityFor(payload.Condition),
		Humidity:      payload.Humidity,
		Conditions:    payload.Condition,
		Timestamp:     ts,
	}, nil
}

func (c *HTTPClient) AssessWeatherRisk(ctx context.Context, location string) (*domain.WeatherRiskAssessment, error) {
	w, err := c.GetCurrentConditions(ctx, location)
	if err != nil {
		return nil, err
	}
	return &domain.WeatherRiskAssessment{
		Location:  location,
		Risks:     AssessRisks(w),
		Timestamp: w.Timestamp,
	}, nil
}

// visibilityFor estimates visibility in km; the aggregator does not report it.
func visibilityFor(condition string) float64 {
	switch strings.ToLower(condition) {
	case "mist":
		return 2
	case "storm":
		return 4
	case "snow":
		return 5
	case "rain":
		return 8
	default:
		return domain.DefaultVisibility
	}
}
