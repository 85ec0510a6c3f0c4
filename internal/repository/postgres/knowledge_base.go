package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/domain/repository"
	"github.com/terrain-analyst/internal/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS terrain_knowledge (
    location      TEXT PRIMARY KEY,
    resolution    TEXT NOT NULL,
    terrain_types TEXT[] NOT NULL,
    soil_type     TEXT NOT NULL,
    slope         INTEGER NOT NULL,
    analyzed_at   TIMESTAMPTZ NOT NULL,
    payload       JSONB NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS terrain_knowledge_history (
    id          BIGSERIAL PRIMARY KEY,
    location    TEXT NOT NULL,
    analyzed_at TIMESTAMPTZ NOT NULL,
    payload     JSONB NOT NULL,
    recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_terrain_knowledge_history_location
    ON terrain_knowledge_history (location, analyzed_at DESC);

CREATE INDEX IF NOT EXISTS idx_terrain_knowledge_types
    ON terrain_knowledge USING GIN (terrain_types);
`

var (
	_ repository.KnowledgeBase    = (*KnowledgeBase)(nil)
	_ repository.KnowledgeArchive = (*KnowledgeBase)(nil)
)

// KnowledgeBase - постоянная база знаний: последний снимок на локацию плюс история
type KnowledgeBase struct {
	db     *DB
	logger *zap.Logger
}

func NewKnowledgeBase(db *DB, logger *zap.Logger) *KnowledgeBase {
	return &KnowledgeBase{db: db, logger: logger}
}

// EnsureSchema создаёт таблицы, если их нет
func (kb *KnowledgeBase) EnsureSchema(ctx context.Context) error {
	if _, err := kb.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure knowledge base schema: %w", errors.ErrDatabaseError.Wrap(err))
	}
	return nil
}

func (kb *KnowledgeBase) UpdateTerrain(ctx context.Context, location string, snapshot *domain.TerrainSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode terrain snapshot: %w", err)
	}

	types := make([]string, len(snapshot.TerrainTypes))
	for i, t := range snapshot.TerrainTypes {
		types[i] = string(t)
	}

	tx, err := kb.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", errors.ErrDatabaseError.Wrap(err))
	}
	defer func() { _ = tx.Rollback() }()

	const upsert = `
		INSERT INTO terrain_knowledge
			(location, resolution, terrain_types, soil_type, slope, analyzed_at, payload, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (location) DO UPDATE SET
			resolution    = EXCLUDED.resolution,
			terrain_types = EXCLUDED.terrain_types,
			soil_type     = EXCLUDED.soil_type,
			slope         = EXCLUDED.slope,
			analyzed_at   = EXCLUDED.analyzed_at,
			payload       = EXCLUDED.payload,
			updated_at    = NOW()`

	if _, err := tx.ExecContext(ctx, upsert,
		location,
		snapshot.Resolution,
		pq.Array(types),
		string(snapshot.SoilType),
		snapshot.Slope,
		snapshot.AnalysisTimestamp,
		payload,
	); err != nil {
		kb.logger.Error("failed to upsert terrain", zap.String("location", location), zap.Error(err))
		return fmt.Errorf("upsert terrain: %w", errors.ErrDatabaseError.Wrap(err))
	}

	const history = `
		INSERT INTO terrain_knowledge_history (location, analyzed_at, payload)
		VALUES ($1, $2, $3)`

	if _, err := tx.ExecContext(ctx, history, location, snapshot.AnalysisTimestamp, payload); err != nil {
		return fmt.Errorf("insert terrain history: %w", errors.ErrDatabaseError.Wrap(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit terrain: %w", errors.ErrDatabaseError.Wrap(err))
	}
	return nil
}

// GetTerrain returns nil, nil when the location was never stored.
func (kb *KnowledgeBase) GetTerrain(ctx context.Context, location string) (*domain.TerrainSnapshot, error) {
	var payload []byte
	err := kb.db.GetContext(ctx, &payload,
		`SELECT payload FROM terrain_knowledge WHERE location = $1`, location)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get terrain: %w", errors.ErrDatabaseError.Wrap(err))
	}

	var snapshot domain.TerrainSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("decode terrain snapshot: %w", err)
	}
	return &snapshot, nil
}

// History возвращает последние снимки локации, новые первыми
func (kb *KnowledgeBase) History(ctx context.Context, location string, limit int) ([]domain.TerrainSnapshot, error) {
	var payloads [][]byte
	err := kb.db.SelectContext(ctx, &payloads, `
		SELECT payload
		FROM terrain_knowledge_history
		WHERE location = $1
		ORDER BY analyzed_at DESC, id DESC
		LIMIT $2`, location, limit)
	if err != nil {
		return nil, fmt.Errorf("select terrain history: %w", errors.ErrDatabaseError.Wrap(err))
	}

	result := make([]domain.TerrainSnapshot, 0, len(payloads))
	for _, payload := range payloads {
		var snapshot domain.TerrainSnapshot
		if err := json.Unmarshal(payload, &snapshot); err != nil {
			return nil, fmt.Errorf("decode terrain history: %w", err)
		}
		result = append(result, snapshot)
	}
	return result, nil
}

// LocationsWithType ищет локации, в которых встречается данный тип местности
func (kb *KnowledgeBase) LocationsWithType(ctx context.Context, terrainType domain.TerrainType) ([]string, error) {
	var locations []string
	err := kb.db.SelectContext(ctx, &locations, `
		SELECT location
		FROM terrain_knowledge
		WHERE $1 = ANY(terrain_types)
		ORDER BY location`, string(terrainType))
	if err != nil {
		return nil, fmt.Errorf("select locations by terrain type: %w", errors.ErrDatabaseError.Wrap(err))
	}
	return locations, nil
}
