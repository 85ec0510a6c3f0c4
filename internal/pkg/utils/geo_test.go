package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terrain-analyst/internal/domain"
)

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     domain.LonLat
		expected float64
		delta    float64
	}{
		{"identical points", domain.LonLat{-118.2, 36.5}, domain.LonLat{-118.2, 36.5}, 0, 0},
		{"one degree of latitude", domain.LonLat{0, 0}, domain.LonLat{0, 1}, 111.19, 0.01},
		{"antipodal", domain.LonLat{0, 0}, domain.LonLat{180, 0}, math.Pi * earthRadiusKm, 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, DistanceKm(tt.a, tt.b), tt.delta)
		})
	}
}

func TestHaversineDistance_Bounded(t *testing.T) {
	limit := 2 * math.Pi * earthRadiusKm
	points := []domain.LonLat{{-180, -90}, {180, 90}, {0, 0}, {-120, 35}, {-21, 44}, {179.9, -0.1}}
	for _, a := range points {
		for _, b := range points {
			d := DistanceKm(a, b)
			assert.GreaterOrEqual(t, d, 0.0)
			assert.LessOrEqual(t, d, limit)
			assert.LessOrEqual(t, d, math.Pi*earthRadiusKm+1e-6)
		}
	}
}

func TestHaversineDistance_NearAntipodes(t *testing.T) {
	limit := math.Pi * earthRadiusKm
	for lat := -89.0; lat <= 89.0; lat += 0.37 {
		for lon := -179.0; lon <= 0.0; lon += 0.5 {
			d := HaversineDistance(lat, lon, -lat, lon+180)
			if math.IsNaN(d) || d < 0 || d > limit+1e-6 {
				t.Fatalf("lat=%.2f lon=%.2f: distance %v outside [0, %v]", lat, lon, d, limit)
			}
			assert.InDelta(t, limit, d, 1e-3)
		}
	}
}

func TestLerp(t *testing.T) {
	a, b := domain.LonLat{0, 10}, domain.LonLat{10, 20}

	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	assert.Equal(t, domain.LonLat{5, 15}, Lerp(a, b, 0.5))
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(44, -21))
	assert.True(t, ValidateCoordinates(-90, 180))
	assert.False(t, ValidateCoordinates(91, 0))
	assert.False(t, ValidateCoordinates(0, -180.5))
}
