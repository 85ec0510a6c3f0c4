package geocoder

import (
	"context"
	"errors"
	"testing"

	"github.com/kelvins/geocoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/domain"
	apperrors "github.com/terrain-analyst/internal/pkg/errors"
)

func TestHashGeocoder_Deterministic(t *testing.T) {
	g := NewHashGeocoder()
	ctx := context.Background()

	a, err := g.Locate(ctx, "mountain_valley_east")
	require.NoError(t, err)
	b, err := g.Locate(ctx, "mountain_valley_east")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestHashGeocoder_Range(t *testing.T) {
	g := NewHashGeocoder()
	for _, loc := range []string{"", "base_camp_alpha", "ridge_overlook", "dense_forest_west", "river_crossing_north"} {
		p, err := g.Locate(context.Background(), loc)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, p.Lat(), 35.0)
		assert.LessOrEqual(t, p.Lat(), 44.0)
		assert.GreaterOrEqual(t, p.Lon(), -120.0)
		assert.LessOrEqual(t, p.Lon(), -21.0)
		assert.Equal(t, p.Lat(), float64(int(p.Lat())))
	}
}

func TestGoogleGeocoder_CachesResults(t *testing.T) {
	calls := 0
	g := NewGoogleGeocoder("test-key", nil, zap.NewNop())
	g.lookup = func(addr geocoder.Address) (geocoder.Location, error) {
		calls++
		assert.Equal(t, "base camp alpha", addr.City)
		return geocoder.Location{Latitude: 46.1234567, Longitude: 7.7654321}, nil
	}

	for i := 0; i < 3; i++ {
		p, err := g.Locate(context.Background(), "base_camp_alpha")
		require.NoError(t, err)
		assert.Equal(t, domain.LonLat{7.765432, 46.123457}, p)
	}
	assert.Equal(t, 1, calls)
}

func TestGoogleGeocoder_Fallback(t *testing.T) {
	failing := func(geocoder.Address) (geocoder.Location, error) {
		return geocoder.Location{}, errors.New("ZERO_RESULTS")
	}

	t.Run("uses fallback", func(t *testing.T) {
		fallback := NewHashGeocoder()
		g := NewGoogleGeocoder("test-key", fallback, zap.NewNop())
		g.lookup = failing

		got, err := g.Locate(context.Background(), "ridge_overlook")
		require.NoError(t, err)
		want, _ := fallback.Locate(context.Background(), "ridge_overlook")
		assert.Equal(t, want, got)
	})

	t.Run("no fallback", func(t *testing.T) {
		g := NewGoogleGeocoder("test-key", nil, zap.NewNop())
		g.lookup = failing

		_, err := g.Locate(context.Background(), "ridge_overlook")
		assert.ErrorContains(t, err, "ZERO_RESULTS")
		assert.ErrorIs(t, err, apperrors.ErrGeocodingFailed)
	})
}

func TestGoogleGeocoder_RejectsInvalidCoordinates(t *testing.T) {
	fallback := NewHashGeocoder()
	g := NewGoogleGeocoder("test-key", fallback, zap.NewNop())
	g.lookup = func(geocoder.Address) (geocoder.Location, error) {
		return geocoder.Location{Latitude: 123, Longitude: 7}, nil
	}

	got, err := g.Locate(context.Background(), "ridge_overlook")
	require.NoError(t, err)
	want, _ := fallback.Locate(context.Background(), "ridge_overlook")
	assert.Equal(t, want, got)
}
