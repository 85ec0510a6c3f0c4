package handler

import (
	stderrors "errors"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/pkg/errors"
	"github.com/terrain-analyst/internal/pkg/validator"
	"github.com/terrain-analyst/internal/usecase/dto"
)

// toAppError maps use-case failures onto HTTP-facing errors.
func toAppError(err error) error {
	var missing *domain.AnalysisMissingError
	if stderrors.As(err, &missing) {
		return errors.ErrAnalysisNotFound.WithDetails(map[string]interface{}{
			"location":       missing.Location,
			"recommendation": dto.RecommendAnalyzeFirst,
		})
	}

	var noMatch *domain.NoMatchingObstaclesError
	if stderrors.As(err, &noMatch) {
		details := map[string]interface{}{
			"location":        noMatch.Location,
			"obstacle_type":   noMatch.ObstacleType,
			"current_weather": noMatch.CurrentWeather,
			"recommendation":  dto.RecommendIdentifyFirst,
		}
		if noMatch.Suggestion != "" {
			details["suggestion"] = noMatch.Suggestion
		}
		return errors.ErrNoMatchingObstacles.WithDetails(details)
	}
	return err
}

func invalid(err error) error {
	return errors.ErrInvalidRequest.WithDetails(validator.Fields(err))
}
