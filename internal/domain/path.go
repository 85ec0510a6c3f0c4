package domain

import "time"

// Route difficulty levels accepted by path generation.
const (
	RouteEasy    = "easy"
	RouteNormal  = "normal"
	RouteHard    = "hard"
	RouteExtreme = "extreme"
)

type Waypoint struct {
	ID                        int     `json:"id"`
	Coordinates               LonLat  `json:"coordinates"`
	EstimatedTimeFromPrevious float64 `json:"estimated_time_from_previous"`
}

// TerrainChallenge - препятствие на маршруте с описанием и способом преодоления
type TerrainChallenge struct {
	Type        ObstacleType `json:"type"`
	Severity    Severity     `json:"severity"`
	Description string       `json:"description"`
	Mitigation  string       `json:"mitigation"`
}

type PathWeather struct {
	Start   *WeatherSnapshot `json:"start"`
	End     *WeatherSnapshot `json:"end"`
	Average WeatherAverage   `json:"average"`
}

// PathPlan - рекомендованный маршрут между двумя локациями
type PathPlan struct {
	Start                string             `json:"start"`
	End                  string             `json:"end"`
	Difficulty           string             `json:"difficulty"`
	DistanceKm           float64            `json:"distance_km"`
	EstimatedTimeHours   float64            `json:"estimated_time_hours"`
	BaseTimeHours        float64            `json:"base_time_hours"`
	WeatherDelayHours    float64            `json:"weather_delay_hours"`
	Waypoints            []Waypoint         `json:"waypoints"`
	TerrainChallenges    []TerrainChallenge `json:"terrain_challenges"`
	RecommendedEquipment []string           `json:"recommended_equipment"`
	GeneratedTimestamp   time.Time          `json:"generated_timestamp"`
	WeatherConditions    *PathWeather       `json:"weather_conditions,omitempty"`
	WeatherRisks         []WeatherRisk      `json:"weather_risks,omitempty"`
}
