package geocoder

import (
	"context"
	"hash/fnv"

	"github.com/terrain-analyst/internal/domain"
)

// HashGeocoder - детерминированные псевдо-координаты по хешу идентификатора.
// Points fall within lat 35..44, lon -120..-21.
type HashGeocoder struct{}

func NewHashGeocoder() *HashGeocoder {
	return &HashGeocoder{}
}

func (g *HashGeocoder) Locate(_ context.Context, location string) (domain.LonLat, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(location))
	bucket := int(h.Sum32() % 1000)

	lat := 35.0 + float64(bucket%10)
	lon := -120.0 + float64(bucket/10)
	return domain.LonLat{domain.Round(lon, 6), domain.Round(lat, 6)}, nil
}
