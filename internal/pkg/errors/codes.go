package errors

import (
	"fmt"
	"net/http"
)

const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnknownRequestType = "UNKNOWN_REQUEST_TYPE"
	CodeUnsupportedFormat  = "UNSUPPORTED_FORMAT"
)

var (
	ErrInvalidRequest = New(
		CodeInvalidRequest,
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrUnknownRequestType = New(
		CodeUnknownRequestType,
		"Unknown request type",
		http.StatusBadRequest,
	)

	ErrLocationRequired = New(
		"LOCATION_REQUIRED",
		"Location is required",
		http.StatusBadRequest,
	)

	ErrAnalysisNotFound = New(
		"ANALYSIS_NOT_FOUND",
		"No prior analysis available",
		http.StatusNotFound,
	)

	ErrNoMatchingObstacles = New(
		"NO_MATCHING_OBSTACLES",
		"No matching obstacles found",
		http.StatusNotFound,
	)

	ErrWeatherUnavailable = New(
		"WEATHER_UNAVAILABLE",
		"Weather service unavailable",
		http.StatusBadGateway,
	)

	ErrGeocodingFailed = New(
		"GEOCODING_FAILED",
		"Failed to resolve location coordinates",
		http.StatusBadGateway,
	)

	ErrKnowledgeBase = New(
		"KNOWLEDGE_BASE_ERROR",
		"Knowledge base operation failed",
		http.StatusInternalServerError,
	)

	ErrHistoryUnavailable = New(
		"HISTORY_UNAVAILABLE",
		"Terrain history requires the postgres knowledge base",
		http.StatusNotImplemented,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

// UnsupportedFormat - экспорт карты в неизвестном формате
func UnsupportedFormat(format string) *AppError {
	return New(
		CodeUnsupportedFormat,
		fmt.Sprintf("Unsupported format: %s", format),
		http.StatusBadRequest,
	)
}
