package repository

import (
	"context"

	"github.com/terrain-analyst/internal/domain"
)

// AnalysisRepository хранит последний снимок анализа по локации
type AnalysisRepository interface {
	// Get возвращает снимок или nil, если анализа ещё не было
	Get(ctx context.Context, location string) (*domain.TerrainSnapshot, error)

	// Save заменяет снимок локации целиком
	Save(ctx context.Context, snapshot *domain.TerrainSnapshot) error
}

// ObstacleRepository хранит список препятствий по локации
type ObstacleRepository interface {
	// Get возвращает список и признак его наличия
	Get(ctx context.Context, location string) ([]domain.Obstacle, bool, error)

	// Save перезаписывает список препятствий локации
	Save(ctx context.Context, location string, obstacles []domain.Obstacle) error

	// Invalidate удаляет список, построенный по устаревшему анализу
	Invalidate(ctx context.Context, location string) error
}

// KnowledgeBase - пассивный приёмник результатов анализа
type KnowledgeBase interface {
	UpdateTerrain(ctx context.Context, location string, snapshot *domain.TerrainSnapshot) error
	GetTerrain(ctx context.Context, location string) (*domain.TerrainSnapshot, error)
}

// KnowledgeArchive - база знаний, хранящая историю снимков (postgres)
type KnowledgeArchive interface {
	// History возвращает до limit снимков локации, новые первыми
	History(ctx context.Context, location string, limit int) ([]domain.TerrainSnapshot, error)
	LocationsWithType(ctx context.Context, terrainType domain.TerrainType) ([]string, error)
}
