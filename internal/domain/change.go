package domain

import "time"

type ChangeType string

const (
	ChangeIncreasedWaterLevels ChangeType = "increased_water_levels"
	ChangeFallenTrees          ChangeType = "fallen_trees"
	ChangeSnowMelt             ChangeType = "snow_melt"
	ChangeFreezingConditions   ChangeType = "freezing_conditions"
)

// TerrainChange - вероятное изменение местности после смены погоды
type TerrainChange struct {
	Type          ChangeType `json:"type"`
	Description   string     `json:"description"`
	AffectedAreas []string   `json:"affected_areas"`
	Severity      Severity   `json:"severity"`
}

// ChangeReport - результат monitor_terrain_changes
type ChangeReport struct {
	Location           string           `json:"location"`
	LastAnalysis       time.Time        `json:"last_analysis"`
	CurrentTime        time.Time        `json:"current_time"`
	DetectedChanges    []TerrainChange  `json:"detected_changes"`
	RequiresReanalysis bool             `json:"requires_reanalysis"`
	CurrentWeather     *WeatherSnapshot `json:"current_weather"`
}

// MaxSeverity returns the most severe detected change, or "" when nothing changed.
func (r *ChangeReport) MaxSeverity() Severity {
	var top Severity
	for _, c := range r.DetectedChanges {
		if c.Severity.Rank() > top.Rank() {
			top = c.Severity
		}
	}
	return top
}
