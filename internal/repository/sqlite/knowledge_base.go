package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/pkg/errors"
	"github.com/terrain-analyst/internal/domain/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS terrain_knowledge (
    location      TEXT PRIMARY KEY,
    resolution    TEXT NOT NULL,
    terrain_types TEXT NOT NULL,
    analyzed_at   TIMESTAMP NOT NULL,
    payload       TEXT NOT NULL,
    updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

type knowledgeBase struct {
	db     *DB
	logger *zap.Logger
}

// NewKnowledgeBase создаёт схему и возвращает базу знаний поверх SQLite
func NewKnowledgeBase(ctx context.Context, db *DB, logger *zap.Logger) (repository.KnowledgeBase, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("ensure knowledge base schema: %w", errors.ErrDatabaseError.Wrap(err))
	}
	return &knowledgeBase{db: db, logger: logger}, nil
}

func (kb *knowledgeBase) UpdateTerrain(ctx context.Context, location string, snapshot *domain.TerrainSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode terrain snapshot: %w", err)
	}
	types, err := json.Marshal(snapshot.TerrainTypes)
	if err != nil {
		return fmt.Errorf("encode terrain types: %w", err)
	}

	_, err = kb.db.ExecContext(ctx, `
		INSERT INTO terrain_knowledge (location, resolution, terrain_types, analyzed_at, payload, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (location) DO UPDATE SET
			resolution    = excluded.resolution,
			terrain_types = excluded.terrain_types,
			analyzed_at   = excluded.analyzed_at,
			payload       = excluded.payload,
			updated_at    = CURRENT_TIMESTAMP`,
		location, snapshot.Resolution, string(types), snapshot.AnalysisTimestamp, string(payload))
	if err != nil {
		kb.logger.Error("failed to upsert terrain", zap.String("location", location), zap.Error(err))
		return fmt.Errorf("upsert terrain: %w", errors.ErrDatabaseError.Wrap(err))
	}
	return nil
}

func (kb *knowledgeBase) GetTerrain(ctx context.Context, location string) (*domain.TerrainSnapshot, error) {
	var payload string
	err := kb.db.GetContext(ctx, &payload, `SELECT payload FROM terrain_knowledge WHERE location = ?`, location)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get terrain: %w", errors.ErrDatabaseError.Wrap(err))
	}

	var snapshot domain.TerrainSnapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return nil, fmt.Errorf("decode terrain snapshot: %w", err)
	}
	return &snapshot, nil
}
