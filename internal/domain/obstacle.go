package domain

import (
	"math"
	"time"
)

type ObstacleType string

const (
	ObstacleGeneric         ObstacleType = "generic_obstacle"
	ObstacleSteepSlope      ObstacleType = "steep_slope"
	ObstacleWaterCrossing   ObstacleType = "water_crossing"
	ObstacleDenseVegetation ObstacleType = "dense_vegetation"
	ObstacleSandyTerrain    ObstacleType = "sandy_terrain"
	ObstacleBoggyGround     ObstacleType = "boggy_ground"
	ObstacleFlashFlood      ObstacleType = "flash_flood"
	ObstacleLowVisibility   ObstacleType = "low_visibility_area"
	ObstacleWindHazard      ObstacleType = "wind_hazard"
)

var AllObstacleTypes = []ObstacleType{
	ObstacleGeneric,
	ObstacleSteepSlope,
	ObstacleWaterCrossing,
	ObstacleDenseVegetation,
	ObstacleSandyTerrain,
	ObstacleBoggyGround,
	ObstacleFlashFlood,
	ObstacleLowVisibility,
	ObstacleWindHazard,
}

type Severity string

const (
	SeverityLow     Severity = "low"
	SeverityMedium  Severity = "medium"
	SeverityHigh    Severity = "high"
	SeverityExtreme Severity = "extreme"
)

// Rank orders severities from low (1) to extreme (4); unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityExtreme:
		return 4
	}
	return 0
}

// LonLat - координаты в порядке GeoJSON: [долгота, широта]
type LonLat [2]float64

func (p LonLat) Lon() float64 { return p[0] }
func (p LonLat) Lat() float64 { return p[1] }

// Offset shifts the point by the given degrees and rounds to 6 decimals.
func (p LonLat) Offset(dLon, dLat float64) LonLat {
	return LonLat{Round(p[0]+dLon, 6), Round(p[1]+dLat, 6)}
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// ObstacleDetails - параметры препятствия; набор полей зависит от типа
type ObstacleDetails struct {
	Description      string   `json:"description,omitempty"`
	AreaSqMeters     *float64 `json:"area_sq_meters,omitempty"`
	SlopeDegrees     *float64 `json:"slope_degrees,omitempty"`
	LengthMeters     *float64 `json:"length_meters,omitempty"`
	WidthMeters      *float64 `json:"width_meters,omitempty"`
	DepthMeters      *float64 `json:"depth_meters,omitempty"`
	CurrentSpeed     *float64 `json:"current_speed,omitempty"`
	VisibilityMeters *float64 `json:"visibility_meters,omitempty"`
	SandDepthCm      *float64 `json:"sand_depth_cm,omitempty"`
	WindSpeedKph     *float64 `json:"wind_speed_kph,omitempty"`
	VegetationType   string   `json:"vegetation_type,omitempty"`
	CausedBy         string   `json:"caused_by,omitempty"`
	Risk             string   `json:"risk,omitempty"`
}

// Fields flattens the populated details for map properties.
func (d ObstacleDetails) Fields() map[string]any {
	out := make(map[string]any)
	setStr := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	setNum := func(k string, v *float64) {
		if v != nil {
			out[k] = *v
		}
	}
	setStr("description", d.Description)
	setNum("area_sq_meters", d.AreaSqMeters)
	setNum("slope_degrees", d.SlopeDegrees)
	setNum("length_meters", d.LengthMeters)
	setNum("width_meters", d.WidthMeters)
	setNum("depth_meters", d.DepthMeters)
	setNum("current_speed", d.CurrentSpeed)
	setNum("visibility_meters", d.VisibilityMeters)
	setNum("sand_depth_cm", d.SandDepthCm)
	setNum("wind_speed_kph", d.WindSpeedKph)
	setStr("vegetation_type", d.VegetationType)
	setStr("caused_by", d.CausedBy)
	setStr("risk", d.Risk)
	return out
}

// Obstacle - препятствие, выявленное для локации
type Obstacle struct {
	Type        ObstacleType    `json:"type"`
	Severity    Severity        `json:"severity"`
	Coordinates LonLat          `json:"coordinates"`
	Details     ObstacleDetails `json:"details"`
}

// ObstacleReport - результат identify_obstacles
type ObstacleReport struct {
	Location          string     `json:"location"`
	ObstacleCount     int        `json:"obstacle_count"`
	Obstacles         []Obstacle `json:"obstacles"`
	WeatherFactored   bool       `json:"weather_factored"`
	AnalysisTimestamp time.Time  `json:"analysis_timestamp"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
