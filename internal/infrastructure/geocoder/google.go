package geocoder

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"
	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/domain/repository"
	"github.com/terrain-analyst/internal/pkg/errors"
	"github.com/terrain-analyst/internal/pkg/utils"
)

type lookupFunc func(geocoder.Address) (geocoder.Location, error)

// GoogleGeocoder resolves locations through the Google Geocoding API and
// memoizes results. Lookup failures fall back to the configured geocoder.
type GoogleGeocoder struct {
	lookup   lookupFunc
	fallback repository.Geocoder
	logger   *zap.Logger

	mu    sync.RWMutex
	cache map[string]domain.LonLat
}

// NewGoogleGeocoder задаёт ключ API пакета geocoder (глобальная переменная библиотеки)
func NewGoogleGeocoder(apiKey string, fallback repository.Geocoder, logger *zap.Logger) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{
		lookup:   geocoder.Geocoding,
		fallback: fallback,
		logger:   logger,
		cache:    make(map[string]domain.LonLat),
	}
}

func (g *GoogleGeocoder) Locate(ctx context.Context, location string) (domain.LonLat, error) {
	g.mu.RLock()
	p, ok := g.cache[location]
	g.mu.RUnlock()
	if ok {
		return p, nil
	}

	loc, err := g.lookup(geocoder.Address{City: searchText(location)})
	if err == nil && !utils.ValidateCoordinates(loc.Latitude, loc.Longitude) {
		err = fmt.Errorf("invalid coordinates %.6f,%.6f", loc.Latitude, loc.Longitude)
	}
	if err != nil {
		if g.fallback == nil {
			return domain.LonLat{}, errors.ErrGeocodingFailed.Wrap(fmt.Errorf("geocode %q: %w", location, err))
		}
		g.logger.Warn("Geocoding failed, using fallback",
			zap.String("location", location),
			zap.Error(err))
		return g.fallback.Locate(ctx, location)
	}

	p = domain.LonLat{domain.Round(loc.Longitude, 6), domain.Round(loc.Latitude, 6)}
	g.mu.Lock()
	g.cache[location] = p
	g.mu.Unlock()
	return p, nil
}

// searchText turns identifiers like "base_camp_alpha" into free text.
func searchText(location string) string {
	return strings.TrimSpace(strings.NewReplacer("_", " ", "-", " ").Replace(location))
}
