package domain

import "fmt"

// DefaultMissionStatus - статус аналитика до первого обновления
const DefaultMissionStatus = "standby"

type StatusUpdate struct {
	Status    string `json:"status"`
	NewStatus string `json:"new_status"`
}

// AnalysisMissingError is returned when change monitoring runs before any analysis.
type AnalysisMissingError struct {
	Location string
}

func (e *AnalysisMissingError) Error() string {
	return "No prior analysis available"
}

// NoMatchingObstaclesError is returned when a crossing is requested for an
// obstacle type absent from the location's obstacle list.
type NoMatchingObstaclesError struct {
	Location       string
	ObstacleType   ObstacleType
	CurrentWeather *WeatherSnapshot
	Suggestion     ObstacleType
}

func (e *NoMatchingObstaclesError) Error() string {
	return "No matching obstacles found"
}

// UnknownObstacleTypeError - тип препятствия без шаблона
type UnknownObstacleTypeError struct {
	Type ObstacleType
}

func (e *UnknownObstacleTypeError) Error() string {
	return fmt.Sprintf("Unknown obstacle type: %s", e.Type)
}
