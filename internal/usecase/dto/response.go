package dto

import "github.com/terrain-analyst/internal/domain"

const (
	RecommendAnalyzeFirst  = "Run terrain analysis first"
	RecommendIdentifyFirst = "Run identify_obstacles to update obstacle database or try a different obstacle type"
)

// ErrorResult - ответ диспетчера при ошибке
type ErrorResult struct {
	Error string `json:"error"`
}

// MissingAnalysisResult - monitor_terrain_changes без предварительного анализа
type MissingAnalysisResult struct {
	Location       string `json:"location"`
	Error          string `json:"error"`
	Recommendation string `json:"recommendation"`
}

// NoMatchResult - evaluate_crossing_difficulty без подходящих препятствий
type NoMatchResult struct {
	Location       string                  `json:"location"`
	ObstacleType   domain.ObstacleType     `json:"obstacle_type"`
	CurrentWeather *domain.WeatherSnapshot `json:"current_weather"`
	Error          string                  `json:"error"`
	Recommendation string                  `json:"recommendation"`
	Suggestion     domain.ObstacleType     `json:"suggestion,omitempty"`
}

func NewMissingAnalysisResult(err *domain.AnalysisMissingError) *MissingAnalysisResult {
	return &MissingAnalysisResult{
		Location:       err.Location,
		Error:          err.Error(),
		Recommendation: RecommendAnalyzeFirst,
	}
}

func NewNoMatchResult(err *domain.NoMatchingObstaclesError) *NoMatchResult {
	return &NoMatchResult{
		Location:       err.Location,
		ObstacleType:   err.ObstacleType,
		CurrentWeather: err.CurrentWeather,
		Error:          err.Error(),
		Recommendation: RecommendIdentifyFirst,
		Suggestion:     err.Suggestion,
	}
}
