package rules

import (
	"fmt"

	"github.com/terrain-analyst/internal/domain"
)

// ObstacleJitter - разброс координат препятствия вокруг центра, градусы
const ObstacleJitter = 0.05

type obstacleTemplate struct {
	severity domain.Severity
	details  func(r Rand) domain.ObstacleDetails
}

func intDetail(r Rand, lo, hi int) *float64 {
	return domain.Float(float64(IntBetween(r, lo, hi)))
}

func floatDetail(r Rand, lo, hi float64) *float64 {
	return domain.Float(Uniform(r, lo, hi))
}

func coinFlip(r Rand, heads, tails string) string {
	if r.Float64() > 0.5 {
		return heads
	}
	return tails
}

var obstacleTemplates = map[domain.ObstacleType]obstacleTemplate{
	domain.ObstacleGeneric: {
		severity: domain.SeverityMedium,
		details: func(r Rand) domain.ObstacleDetails {
			return domain.ObstacleDetails{
				Description:  "General terrain challenge",
				AreaSqMeters: intDetail(r, 50, 500),
			}
		},
	},
	domain.ObstacleSteepSlope: {
		severity: domain.SeverityHigh,
		details: func(r Rand) domain.ObstacleDetails {
			return domain.ObstacleDetails{
				SlopeDegrees: intDetail(r, 30, 60),
				LengthMeters: intDetail(r, 100, 500),
			}
		},
	},
	domain.ObstacleWaterCrossing: {
		severity: domain.SeverityMedium,
		details: func(r Rand) domain.ObstacleDetails {
			return domain.ObstacleDetails{
				WidthMeters:  intDetail(r, 5, 30),
				DepthMeters:  floatDetail(r, 0.5, 3.0),
				CurrentSpeed: floatDetail(r, 1.0, 5.0),
			}
		},
	},
	domain.ObstacleDenseVegetation: {
		severity: domain.SeverityMedium,
		details: func(r Rand) domain.ObstacleDetails {
			return domain.ObstacleDetails{
				AreaSqMeters:     intDetail(r, 100, 5000),
				VisibilityMeters: intDetail(r, 1, 10),
				VegetationType:   Pick(r, []string{"thick brush", "dense forest", "thorny bushes"}),
			}
		},
	},
	domain.ObstacleSandyTerrain: {
		severity: domain.SeverityMedium,
		details: func(r Rand) domain.ObstacleDetails {
			return domain.ObstacleDetails{
				AreaSqMeters: intDetail(r, 500, 10000),
				SandDepthCm:  intDetail(r, 10, 100),
			}
		},
	},
	domain.ObstacleBoggyGround: {
		severity: domain.SeverityHigh,
		details: func(r Rand) domain.ObstacleDetails {
			return domain.ObstacleDetails{
				AreaSqMeters: intDetail(r, 50, 2000),
				DepthMeters:  floatDetail(r, 0.3, 2.0),
			}
		},
	},
	domain.ObstacleFlashFlood: {
		severity: domain.SeverityExtreme,
		details: func(r Rand) domain.ObstacleDetails {
			return domain.ObstacleDetails{
				DepthMeters:  floatDetail(r, 0.5, 2.0),
				CurrentSpeed: floatDetail(r, 2.0, 8.0),
				CausedBy:     "heavy rainfall",
			}
		},
	},
	domain.ObstacleLowVisibility: {
		severity: domain.SeverityHigh,
		details: func(r Rand) domain.ObstacleDetails {
			return domain.ObstacleDetails{
				VisibilityMeters: intDetail(r, 100, 3000),
				CausedBy:         coinFlip(r, "fog", "haze"),
			}
		},
	},
	domain.ObstacleWindHazard: {
		severity: domain.SeverityHigh,
		details: func(r Rand) domain.ObstacleDetails {
			return domain.ObstacleDetails{
				WindSpeedKph: intDetail(r, 40, 80),
				Risk:         coinFlip(r, "falling branches", "reduced stability"),
			}
		},
	},
}

// ObstacleRule - условие появления препятствия и уточнение его деталей
type ObstacleRule struct {
	Type domain.ObstacleType
	When func(c Context) bool
	// Adjust overrides template details from the observed conditions.
	Adjust func(c Context, d *domain.ObstacleDetails)
}

// ObstacleRules is evaluated in order; output preserves this order.
var ObstacleRules = []ObstacleRule{
	{
		Type: domain.ObstacleGeneric,
		When: func(Context) bool { return true },
	},
	{
		Type: domain.ObstacleSteepSlope,
		When: func(c Context) bool { return c.Has(domain.TerrainMountain) },
	},
	{
		Type: domain.ObstacleWaterCrossing,
		When: func(c Context) bool { return c.Has(domain.TerrainRiver) },
	},
	{
		Type: domain.ObstacleDenseVegetation,
		When: func(c Context) bool { return c.Terrain != nil && c.Terrain.VegetationDensity > 0.7 },
	},
	{
		Type: domain.ObstacleSandyTerrain,
		When: func(c Context) bool { return c.Has(domain.TerrainDesert) },
	},
	{
		Type: domain.ObstacleBoggyGround,
		When: func(c Context) bool { return c.Has(domain.TerrainSwamp) },
	},
	{
		Type: domain.ObstacleFlashFlood,
		When: func(c Context) bool { return c.HasWeather() && c.Weather.Precipitation > 30 },
	},
	{
		Type: domain.ObstacleLowVisibility,
		When: func(c Context) bool { return c.HasWeather() && c.Weather.Visibility < 3 },
		Adjust: func(c Context, d *domain.ObstacleDetails) {
			d.VisibilityMeters = domain.Float(c.Weather.Visibility * 1000)
			d.CausedBy = "haze"
			if c.Weather.Temperature < 15 {
				d.CausedBy = "fog"
			}
		},
	},
	{
		Type: domain.ObstacleWindHazard,
		When: func(c Context) bool { return c.HasWeather() && c.Weather.WindSpeed > 40 },
		Adjust: func(c Context, d *domain.ObstacleDetails) {
			d.WindSpeedKph = domain.Float(c.Weather.WindSpeed)
			d.Risk = "reduced stability"
			if c.Has(domain.TerrainForest) {
				d.Risk = "falling branches"
			}
		},
	},
}

// Каждый тип препятствия и каждое правило обязаны иметь шаблон.
func init() {
	for _, t := range domain.AllObstacleTypes {
		if !KnownObstacleType(t) {
			panic(fmt.Sprintf("rules: obstacle type %q has no template", t))
		}
	}
	for _, rule := range ObstacleRules {
		if !KnownObstacleType(rule.Type) {
			panic(fmt.Sprintf("rules: obstacle rule %q has no template", rule.Type))
		}
	}
}

// ObstacleGenerator создаёт препятствия по таблице ObstacleRules
type ObstacleGenerator struct {
	rng Rand
}

func NewObstacleGenerator(rng Rand) *ObstacleGenerator {
	return &ObstacleGenerator{rng: rng}
}

// Generate returns the obstacles implied by terrain and, when non-nil, weather.
// The generic obstacle is always first.
func (g *ObstacleGenerator) Generate(center domain.LonLat, terrain *domain.TerrainSnapshot, weather *domain.WeatherSnapshot) []domain.Obstacle {
	c := Context{Terrain: terrain, Weather: weather}
	obstacles := make([]domain.Obstacle, 0, len(ObstacleRules))
	for _, rule := range ObstacleRules {
		if !rule.When(c) {
			continue
		}
		// шаблоны всех правил проверены в init
		o, _ := g.Create(rule.Type, center)
		if rule.Adjust != nil {
			rule.Adjust(c, &o.Details)
		}
		obstacles = append(obstacles, o)
	}
	return obstacles
}

// Create builds one obstacle of type t near center from its template.
func (g *ObstacleGenerator) Create(t domain.ObstacleType, center domain.LonLat) (domain.Obstacle, error) {
	tpl, ok := obstacleTemplates[t]
	if !ok {
		return domain.Obstacle{}, &domain.UnknownObstacleTypeError{Type: t}
	}
	return domain.Obstacle{
		Type:        t,
		Severity:    tpl.severity,
		Coordinates: Jitter(g.rng, center, ObstacleJitter),
		Details:     tpl.details(g.rng),
	}, nil
}

// KnownObstacleType reports whether t has a template.
func KnownObstacleType(t domain.ObstacleType) bool {
	_, ok := obstacleTemplates[t]
	return ok
}
