package usecase

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/pkg/errors"
	"github.com/terrain-analyst/internal/pkg/validator"
	"github.com/terrain-analyst/internal/usecase/dto"
)

// Dispatcher - единая точка входа: маршрутизирует запрос по операции.
// It never returns an error; every failure becomes a structured result.
type Dispatcher struct {
	terrain *TerrainUseCase
	logger  *zap.Logger
}

func NewDispatcher(terrain *TerrainUseCase, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{terrain: terrain, logger: logger}
}

// Dispatch routes a raw JSON request.
func (d *Dispatcher) Dispatch(ctx context.Context, raw []byte) (result any) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Dispatch panicked", zap.Any("panic", r))
			result = &dto.ErrorResult{Error: fmt.Sprint(r)}
		}
	}()

	var envelope dto.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &dto.ErrorResult{Error: errors.ErrInvalidRequest.Message}
	}

	out, err := d.route(ctx, envelope)
	if err != nil {
		return d.render(envelope.Operation, err)
	}
	return out
}

func (d *Dispatcher) route(ctx context.Context, env dto.Envelope) (any, error) {
	switch env.Operation {
	case dto.OpAnalyzeTerrain:
		var req dto.AnalyzeTerrainRequest
		if err := decode(env.Body, &req); err != nil {
			return nil, err
		}
		return d.terrain.AnalyzeTerrain(ctx, req.Location, req.Resolution, dto.WeatherFlag(req.IncludeWeather))

	case dto.OpIdentifyObstacles:
		var req dto.IdentifyObstaclesRequest
		if err := decode(env.Body, &req); err != nil {
			return nil, err
		}
		return d.terrain.IdentifyObstacles(ctx, req.Location, dto.WeatherFlag(req.IncludeWeather))

	case dto.OpGeneratePath:
		var req dto.GeneratePathRequest
		if err := decode(env.Body, &req); err != nil {
			return nil, err
		}
		return d.terrain.GeneratePath(ctx, req.Start, req.End, req.Difficulty, dto.WeatherFlag(req.IncludeWeather))

	case dto.OpGetTerrainMap:
		var req dto.TerrainMapRequest
		if err := decode(env.Body, &req); err != nil {
			return nil, err
		}
		return d.terrain.GetTerrainMap(ctx, req.Location, req.Format, dto.WeatherFlag(req.IncludeWeather))

	case dto.OpMonitorTerrainChanges:
		var req dto.MonitorChangesRequest
		if err := decode(env.Body, &req); err != nil {
			return nil, err
		}
		return d.terrain.MonitorTerrainChanges(ctx, req.Location)

	case dto.OpEvaluateCrossingDifficulty:
		var req dto.CrossingRequest
		if err := decode(env.Body, &req); err != nil {
			return nil, err
		}
		return d.terrain.EvaluateCrossingDifficulty(ctx, req.Location, req.ObstacleType)
	}
	return nil, errors.ErrUnknownRequestType
}

func decode(body json.RawMessage, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"error": err.Error()})
	}
	if err := validator.Validate(dst); err != nil {
		return errors.ErrInvalidRequest.WithDetails(validator.Fields(err))
	}
	return nil
}

// render turns an operation failure into the result returned to the caller.
func (d *Dispatcher) render(op dto.Operation, err error) any {
	var missing *domain.AnalysisMissingError
	if stderrors.As(err, &missing) {
		return dto.NewMissingAnalysisResult(missing)
	}
	var noMatch *domain.NoMatchingObstaclesError
	if stderrors.As(err, &noMatch) {
		return dto.NewNoMatchResult(noMatch)
	}

	d.logger.Warn("Request failed",
		zap.String("operation", string(op)),
		zap.Error(err))

	message := errors.Message(err)
	if appErr, ok := errors.As(err); ok && appErr.Code == errors.CodeInvalidRequest {
		message = describeInvalid(appErr)
	}
	return &dto.ErrorResult{Error: message}
}

// describeInvalid folds validation details into the message, e.g.
// "Invalid request parameters: location=required".
func describeInvalid(appErr *errors.AppError) string {
	if len(appErr.Details) == 0 {
		return appErr.Message
	}
	fields := make([]string, 0, len(appErr.Details))
	for field, rule := range appErr.Details {
		fields = append(fields, fmt.Sprintf("%s=%v", field, rule))
	}
	slices.Sort(fields)
	return appErr.Message + ": " + strings.Join(fields, ", ")
}
