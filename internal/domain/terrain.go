package domain

import (
	"slices"
	"time"
)

// TerrainType - класс местности в снимке анализа
type TerrainType string

const (
	TerrainForest   TerrainType = "forest"
	TerrainMountain TerrainType = "mountain"
	TerrainRiver    TerrainType = "river"
	TerrainPlains   TerrainType = "plains"
	TerrainUrban    TerrainType = "urban"
	TerrainDesert   TerrainType = "desert"
	TerrainTundra   TerrainType = "tundra"
	TerrainSwamp    TerrainType = "swamp"
)

// AllTerrainTypes is the sampling pool for a survey.
var AllTerrainTypes = []TerrainType{
	TerrainForest,
	TerrainMountain,
	TerrainRiver,
	TerrainPlains,
	TerrainUrban,
	TerrainDesert,
	TerrainTundra,
	TerrainSwamp,
}

type SoilType string

const (
	SoilRocky SoilType = "rocky"
	SoilSandy SoilType = "sandy"
	SoilClay  SoilType = "clay"
	SoilLoam  SoilType = "loam"
	SoilPeat  SoilType = "peat"
)

var AllSoilTypes = []SoilType{SoilRocky, SoilSandy, SoilClay, SoilLoam, SoilPeat}

const DefaultResolution = "medium"

// ElevationRange в метрах, Min < Max
type ElevationRange struct {
	Min int `json:"min" db:"elevation_min"`
	Max int `json:"max" db:"elevation_max"`
}

// TerrainSnapshot - результат анализа местности для одной локации.
// Weather fields are populated only when the analysis included weather.
type TerrainSnapshot struct {
	Location          string           `json:"location"`
	Resolution        string           `json:"resolution"`
	TerrainTypes      []TerrainType    `json:"terrain_types"`
	Elevation         ElevationRange   `json:"elevation"`
	Slope             int              `json:"slope"`
	WaterBodies       int              `json:"water_bodies"`
	VegetationDensity float64          `json:"vegetation_density"`
	SoilType          SoilType         `json:"soil_type"`
	AnalysisTimestamp time.Time        `json:"analysis_timestamp"`
	WeatherConditions *WeatherSnapshot `json:"weather_conditions,omitempty"`
	WeatherRisks      []WeatherRisk    `json:"weather_risks,omitempty"`
	Interactions      []Interaction    `json:"terrain_weather_interactions,omitempty"`
}

func (t *TerrainSnapshot) HasType(tt TerrainType) bool {
	return slices.Contains(t.TerrainTypes, tt)
}

// WeatherIncluded reports whether the snapshot was taken with weather.
func (t *TerrainSnapshot) WeatherIncluded() bool {
	return t.WeatherConditions != nil
}
