package rules

import "github.com/terrain-analyst/internal/domain"

// InteractionRule - пара условий местность+погода и вызванная ими опасность
type InteractionRule struct {
	Key         string
	Type        domain.InteractionType
	Description string
	When        func(c Context) bool
	Severity    func(c Context) domain.Severity
}

func fixed(s domain.Severity) func(Context) domain.Severity {
	return func(Context) domain.Severity { return s }
}

// above returns high when v exceeds limit, medium otherwise.
func above(v func(Context) float64, limit float64) func(Context) domain.Severity {
	return func(c Context) domain.Severity {
		if v(c) > limit {
			return domain.SeverityHigh
		}
		return domain.SeverityMedium
	}
}

func precipitation(c Context) float64 { return c.Weather.Precipitation }
func slope(c Context) float64         { return float64(c.Terrain.Slope) }

// InteractionRules are independent; output preserves declaration order.
var InteractionRules = []InteractionRule{
	{
		Key:         "landslide_risk",
		Type:        domain.InteractionLandslideRisk,
		Description: "Rain increases the risk of landslides on steep slopes",
		When: func(c Context) bool {
			return c.Has(domain.TerrainMountain) && c.Weather.Precipitation > 10
		},
		Severity: above(precipitation, 30),
	},
	{
		Key:         "rising_water",
		Type:        domain.InteractionRisingWater,
		Description: "Rain may cause water levels to rise",
		When: func(c Context) bool {
			return c.Has(domain.TerrainRiver) && c.Weather.Precipitation > 10
		},
		Severity: above(precipitation, 40),
	},
	{
		Key:         "slippery_ground",
		Type:        domain.InteractionSlipperyGround,
		Description: "Rain on clay soil creates slippery conditions",
		When: func(c Context) bool {
			return c.Terrain.SoilType == domain.SoilClay && c.Weather.Precipitation > 10
		},
		Severity: fixed(domain.SeverityMedium),
	},
	{
		Key:         "falling_branches",
		Type:        domain.InteractionFallingBranches,
		Description: "High winds may cause branches or trees to fall",
		When: func(c Context) bool {
			return c.Has(domain.TerrainForest) && c.Weather.WindSpeed > 30
		},
		Severity: fixed(domain.SeverityHigh),
	},
	{
		Key:         "dangerous_ridgelines",
		Type:        domain.InteractionDangerousRidgelines,
		Description: "High winds on exposed ridgelines create hazardous conditions",
		When: func(c Context) bool {
			return c.Terrain.Elevation.Max > 1000 && c.Weather.WindSpeed > 30
		},
		Severity: fixed(domain.SeverityHigh),
	},
	{
		Key:         "ice_formation",
		Type:        domain.InteractionIceFormation,
		Description: "Freezing temperatures create ice on water crossings",
		When: func(c Context) bool {
			return c.Has(domain.TerrainRiver) && c.Weather.Temperature < 0
		},
		Severity: fixed(domain.SeverityMedium),
	},
	{
		Key:         "slippery_surfaces",
		Type:        domain.InteractionSlipperySurfaces,
		Description: "Freezing temperatures create icy surfaces",
		When:        func(c Context) bool { return c.Weather.Temperature < 0 },
		Severity:    above(slope, 20),
	},
	{
		Key:         "extreme_heat",
		Type:        domain.InteractionExtremeHeat,
		Description: "High temperatures increase risk of heat-related illness",
		When: func(c Context) bool {
			return c.Has(domain.TerrainDesert) && c.Weather.Temperature > 35
		},
		Severity: fixed(domain.SeverityExtreme),
	},
	{
		Key:         "reduced_visibility",
		Type:        domain.InteractionReducedVisibility,
		Description: "Poor visibility increases risk of navigation errors",
		When:        func(c Context) bool { return c.Weather.Visibility < 5 },
		Severity:    above(slope, 30),
	},
}

// AnalyzeInteractions returns every interaction whose condition holds.
// Without weather there are no interactions.
func AnalyzeInteractions(terrain *domain.TerrainSnapshot, weather *domain.WeatherSnapshot) []domain.Interaction {
	if terrain == nil || weather == nil {
		return nil
	}
	c := Context{Terrain: terrain, Weather: weather}
	out := make([]domain.Interaction, 0)
	for _, rule := range InteractionRules {
		if !rule.When(c) {
			continue
		}
		out = append(out, domain.Interaction{
			Type:        rule.Type,
			Description: rule.Description,
			Severity:    rule.Severity(c),
		})
	}
	return out
}
