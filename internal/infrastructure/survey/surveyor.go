package survey

import (
	"context"
	"sync"
	"time"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/rules"
)

// Диапазоны синтетического рельефа
const (
	elevationFloor   = 100
	elevationCeiling = 1500
	// elevationSplit separates the min and max draws so Min < Max always holds.
	elevationSplit = elevationCeiling - 200

	maxSlope       = 60
	maxWaterBodies = 5
	typesPerSurvey = 3
)

// RandomSurveyor fabricates plausible terrain attributes. There is no real
// elevation source behind it.
type RandomSurveyor struct {
	mu  sync.Mutex
	rng rules.Rand
	now func() time.Time
}

func NewRandomSurveyor(rng rules.Rand) *RandomSurveyor {
	return &RandomSurveyor{rng: rng, now: time.Now}
}

func (s *RandomSurveyor) Survey(_ context.Context, location, resolution string) (*domain.TerrainSnapshot, error) {
	if resolution == "" {
		resolution = domain.DefaultResolution
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return &domain.TerrainSnapshot{
		Location:     location,
		Resolution:   resolution,
		TerrainTypes: rules.Sample(s.rng, domain.AllTerrainTypes, typesPerSurvey),
		Elevation: domain.ElevationRange{
			Min: rules.IntBetween(s.rng, elevationFloor, elevationSplit-1),
			Max: rules.IntBetween(s.rng, elevationSplit, elevationCeiling),
		},
		Slope:             rules.IntBetween(s.rng, 0, maxSlope),
		WaterBodies:       rules.IntBetween(s.rng, 0, maxWaterBodies),
		VegetationDensity: s.rng.Float64(),
		SoilType:          rules.Pick(s.rng, domain.AllSoilTypes),
		AnalysisTimestamp: s.now().UTC(),
	}, nil
}
