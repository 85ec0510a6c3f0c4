package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/pkg/errors"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// HistoryAvailable reports whether the knowledge base keeps past analyses.
func (uc *TerrainUseCase) HistoryAvailable() bool {
	return uc.archive != nil
}

// TerrainHistory returns stored analyses of a location, newest first.
// It reads the knowledge base only and does not touch the analysis cache.
func (uc *TerrainUseCase) TerrainHistory(ctx context.Context, location string, limit int) ([]domain.TerrainSnapshot, error) {
	if strings.TrimSpace(location) == "" {
		return nil, errors.ErrLocationRequired
	}
	if uc.archive == nil {
		return nil, errors.ErrHistoryUnavailable
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = min(limit, MaxHistoryLimit)

	history, err := uc.archive.History(ctx, location, limit)
	if err != nil {
		uc.logger.Error("Terrain history failed", zap.String("location", location), zap.Error(err))
		return nil, fmt.Errorf("terrain history: %w", errors.ErrKnowledgeBase.Wrap(err))
	}
	return history, nil
}

// LocationsWithTerrain lists stored locations whose latest analysis contains terrainType.
func (uc *TerrainUseCase) LocationsWithTerrain(ctx context.Context, terrainType domain.TerrainType) ([]string, error) {
	if uc.archive == nil {
		return nil, errors.ErrHistoryUnavailable
	}

	locations, err := uc.archive.LocationsWithType(ctx, terrainType)
	if err != nil {
		uc.logger.Error("Terrain lookup failed", zap.String("terrain_type", string(terrainType)), zap.Error(err))
		return nil, fmt.Errorf("locations with terrain: %w", errors.ErrKnowledgeBase.Wrap(err))
	}
	if locations == nil {
		locations = []string{}
	}
	return locations, nil
}
