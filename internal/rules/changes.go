package rules

import "github.com/terrain-analyst/internal/domain"

// ChangeRule - признак изменения местности между двумя погодными снимками
type ChangeRule struct {
	Change domain.TerrainChange
	When   func(old, cur *domain.WeatherSnapshot, terrain *domain.TerrainSnapshot) bool
}

// ChangeRules are independent. The two temperature rules cannot both fire
// since one needs the old temperature below zero and the other above.
var ChangeRules = []ChangeRule{
	{
		Change: domain.TerrainChange{
			Type:          domain.ChangeIncreasedWaterLevels,
			Description:   "Recent rainfall may have raised water levels",
			AffectedAreas: []string{"river banks", "low-lying areas"},
			Severity:      domain.SeverityMedium,
		},
		When: func(old, cur *domain.WeatherSnapshot, _ *domain.TerrainSnapshot) bool {
			return cur.Precipitation > old.Precipitation+20
		},
	},
	{
		Change: domain.TerrainChange{
			Type:          domain.ChangeFallenTrees,
			Description:   "Increased winds may have caused tree falls",
			AffectedAreas: []string{"forested areas", "trails"},
			Severity:      domain.SeverityHigh,
		},
		When: func(old, cur *domain.WeatherSnapshot, terrain *domain.TerrainSnapshot) bool {
			return cur.WindSpeed > old.WindSpeed+15 && terrain.HasType(domain.TerrainForest)
		},
	},
	{
		Change: domain.TerrainChange{
			Type:          domain.ChangeSnowMelt,
			Description:   "Rising temperatures are causing snow and ice melt",
			AffectedAreas: []string{"slopes", "water crossings"},
			Severity:      domain.SeverityMedium,
		},
		When: func(old, cur *domain.WeatherSnapshot, _ *domain.TerrainSnapshot) bool {
			return old.Temperature < 0 && cur.Temperature > 5
		},
	},
	{
		Change: domain.TerrainChange{
			Type:          domain.ChangeFreezingConditions,
			Description:   "Dropping temperatures are causing icy conditions",
			AffectedAreas: []string{"paths", "slopes", "water crossings"},
			Severity:      domain.SeverityHigh,
		},
		When: func(old, cur *domain.WeatherSnapshot, _ *domain.TerrainSnapshot) bool {
			return old.Temperature > 0 && cur.Temperature < 0
		},
	},
}

// DetectChanges compares the analysis-time weather with cur.
// An analysis taken without weather yields no changes.
func DetectChanges(terrain *domain.TerrainSnapshot, cur *domain.WeatherSnapshot) []domain.TerrainChange {
	changes := make([]domain.TerrainChange, 0)
	if terrain == nil || terrain.WeatherConditions == nil || cur == nil {
		return changes
	}
	old := terrain.WeatherConditions
	for _, rule := range ChangeRules {
		if !rule.When(old, cur, terrain) {
			continue
		}
		change := rule.Change
		change.AffectedAreas = append([]string(nil), rule.Change.AffectedAreas...)
		changes = append(changes, change)
	}
	return changes
}
