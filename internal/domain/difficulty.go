package domain

import "time"

type DifficultyTier string

const (
	TierEasy      DifficultyTier = "easy"
	TierModerate  DifficultyTier = "moderate"
	TierDifficult DifficultyTier = "difficult"
	TierExtreme   DifficultyTier = "extreme"
)

// DifficultyEvaluation - оценка пересечения одного препятствия.
// ObstacleID is the obstacle's index in the location's obstacle list.
type DifficultyEvaluation struct {
	ObstacleID             int            `json:"obstacle_id"`
	Coordinates            LonLat         `json:"coordinates"`
	BaseDifficulty         int            `json:"base_difficulty"`
	WeatherModifier        int            `json:"weather_modifier"`
	FinalDifficulty        int            `json:"final_difficulty"`
	DifficultyRating       DifficultyTier `json:"difficulty_rating"`
	CrossingRecommendation string         `json:"crossing_recommendation"`
	EstimatedCrossingTime  float64        `json:"estimated_crossing_time"`
}

// CrossingReport - результат evaluate_crossing_difficulty
type CrossingReport struct {
	Location            string                 `json:"location"`
	ObstacleType        ObstacleType           `json:"obstacle_type"`
	CurrentWeather      *WeatherSnapshot       `json:"current_weather"`
	EvaluationTimestamp time.Time              `json:"evaluation_timestamp"`
	Evaluations         []DifficultyEvaluation `json:"evaluations"`
}
