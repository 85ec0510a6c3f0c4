package domain

import (
	"encoding/json"
	"time"
)

// Значения по умолчанию для отсутствующих погодных атрибутов
const (
	DefaultTemperature = 20.0
	DefaultVisibility  = 10.0
)

// WeatherSnapshot - текущие погодные условия для локации.
// Temperature in °C, WindSpeed in km/h, Precipitation in mm, Visibility in km.
type WeatherSnapshot struct {
	Location      string    `json:"location,omitempty"`
	Temperature   float64   `json:"temperature"`
	WindSpeed     float64   `json:"wind_speed"`
	Precipitation float64   `json:"precipitation"`
	Visibility    float64   `json:"visibility"`
	Humidity      float64   `json:"humidity,omitempty"`
	Conditions    string    `json:"conditions,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// UnmarshalJSON fills attributes absent from the payload with their defaults.
func (w *WeatherSnapshot) UnmarshalJSON(data []byte) error {
	type alias WeatherSnapshot
	out := alias{
		Temperature: DefaultTemperature,
		Visibility:  DefaultVisibility,
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*w = WeatherSnapshot(out)
	return nil
}

// WeatherRisk - риск, вычисленный погодным сервисом
type WeatherRisk struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// WeatherRiskAssessment - ответ AssessWeatherRisk
type WeatherRiskAssessment struct {
	Location  string        `json:"location"`
	Risks     []WeatherRisk `json:"risks"`
	Timestamp time.Time     `json:"timestamp"`
}

// WeatherAverage - среднее по начальной и конечной точке маршрута
type WeatherAverage struct {
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"wind_speed"`
	Precipitation float64 `json:"precipitation"`
	Visibility    float64 `json:"visibility"`
}
