package utils

import (
	"math"

	"github.com/terrain-analyst/internal/domain"
)

const earthRadiusKm = 6371.0

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	// округление может вывести a за [0, 1] у почти антиподальных точек
	a = math.Max(0, math.Min(1, a))
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusKm * c
}

// DistanceKm - расстояние между точками [lon, lat]
func DistanceKm(a, b domain.LonLat) float64 {
	return HaversineDistance(a.Lat(), a.Lon(), b.Lat(), b.Lon())
}

// Lerp interpolates between a and b at ratio t.
func Lerp(a, b domain.LonLat, t float64) domain.LonLat {
	return domain.LonLat{
		a.Lon() + (b.Lon()-a.Lon())*t,
		a.Lat() + (b.Lat()-a.Lat())*t,
	}
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
