package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamTerrainRequests = "stream:terrain:requests"
	StreamTerrainResults  = "stream:terrain:results"
	StreamTerrainChanges  = "stream:terrain:changes"
)

// TerrainRequestEvent - входящий запрос к аналитику через stream.
// Payload is a dispatcher request body.
type TerrainRequestEvent struct {
	RequestID uuid.UUID       `json:"request_id"`
	Payload   json.RawMessage `json:"payload"`
}

// TerrainResultEvent - ответ на TerrainRequestEvent
type TerrainResultEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	Result    any       `json:"result,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// TerrainChangeEvent - отчёт периодического мониторинга
// MaxSeverity lets subscribers filter alerts without walking the report.
type TerrainChangeEvent struct {
	EventID     uuid.UUID     `json:"event_id"`
	Report      *ChangeReport `json:"report"`
	MaxSeverity Severity      `json:"max_severity"`
	DetectedAt  time.Time     `json:"detected_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
