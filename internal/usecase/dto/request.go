package dto

import (
	"bytes"
	"encoding/json"

	"github.com/terrain-analyst/internal/domain"
)

// Operation - дискриминант запроса к аналитику
type Operation string

const (
	OpAnalyzeTerrain             Operation = "analyze_terrain"
	OpIdentifyObstacles          Operation = "identify_obstacles"
	OpGeneratePath               Operation = "generate_path"
	OpGetTerrainMap              Operation = "get_terrain_map"
	OpMonitorTerrainChanges      Operation = "monitor_terrain_changes"
	OpEvaluateCrossingDifficulty Operation = "evaluate_crossing_difficulty"
)

// Operations in routing priority order. A body carrying several operation
// keys is routed to the first one listed here.
var Operations = []Operation{
	OpAnalyzeTerrain,
	OpIdentifyObstacles,
	OpGeneratePath,
	OpGetTerrainMap,
	OpMonitorTerrainChanges,
	OpEvaluateCrossingDifficulty,
}

// Envelope - сырой запрос диспетчера.
// The operation is named either by "type" or by the presence of an operation key.
type Envelope struct {
	Operation Operation
	Body      json.RawMessage
}

func (e *Envelope) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	e.Body = bytes.Clone(data)
	e.Operation = ""

	if raw, ok := fields["type"]; ok {
		var op string
		if err := json.Unmarshal(raw, &op); err == nil && op != "" {
			e.Operation = Operation(op)
			return nil
		}
	}
	for _, op := range Operations {
		if _, ok := fields[string(op)]; ok {
			e.Operation = op
			return nil
		}
	}
	return nil
}

// WeatherFlag defaults an absent include_weather to true.
func WeatherFlag(v *bool) bool {
	return v == nil || *v
}

type AnalyzeTerrainRequest struct {
	Location       string `json:"location" validate:"required,notblank"`
	Resolution     string `json:"resolution" validate:"omitempty,max=32"`
	IncludeWeather *bool  `json:"include_weather,omitempty"`
}

type IdentifyObstaclesRequest struct {
	Location       string `json:"location" validate:"required,notblank"`
	IncludeWeather *bool  `json:"include_weather,omitempty"`
}

type GeneratePathRequest struct {
	Start          string `json:"start" validate:"required,notblank"`
	End            string `json:"end" validate:"required,notblank"`
	Difficulty     string `json:"difficulty" validate:"omitempty,max=32"`
	IncludeWeather *bool  `json:"include_weather,omitempty"`
}

type TerrainMapRequest struct {
	Location       string `json:"location" validate:"required,notblank"`
	Format         string `json:"format" validate:"omitempty,max=32"`
	IncludeWeather *bool  `json:"include_weather,omitempty"`
}

type MonitorChangesRequest struct {
	Location string `json:"location" validate:"required,notblank"`
}

type CrossingRequest struct {
	Location     string              `json:"location" validate:"required,notblank"`
	ObstacleType domain.ObstacleType `json:"obstacle_type" validate:"required,notblank"`
}

// StatusRequest - смена статуса миссии
type StatusRequest struct {
	Status string `json:"status" validate:"required,notblank,max=64"`
}

// HistoryRequest - история анализов локации из базы знаний
type HistoryRequest struct {
	Location string `json:"location" validate:"required,notblank"`
	Limit    int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

// TerrainLookupRequest - поиск локаций по типу местности
type TerrainLookupRequest struct {
	TerrainType domain.TerrainType `json:"terrain_type" validate:"required,oneof=forest mountain river plains urban desert tundra swamp"`
}
