package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/domain/repository"
	"github.com/terrain-analyst/internal/pkg/errors"
	"github.com/terrain-analyst/internal/pkg/utils"
)

const keyPrefix = "terrain:kb:"

type knowledgeBase struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewKnowledgeBase - база знаний в Redis; снимки хранятся в msgpack с TTL
func NewKnowledgeBase(client *redis.Client, ttl time.Duration, logger *zap.Logger) repository.KnowledgeBase {
	return &knowledgeBase{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func terrainKey(location string) string {
	return keyPrefix + location
}

func (kb *knowledgeBase) UpdateTerrain(ctx context.Context, location string, snapshot *domain.TerrainSnapshot) error {
	payload, err := utils.MarshalMsgpack(snapshot)
	if err != nil {
		return fmt.Errorf("encode terrain snapshot: %w", err)
	}

	if err := kb.client.Set(ctx, terrainKey(location), payload, kb.ttl).Err(); err != nil {
		kb.logger.Error("Failed to store terrain", zap.String("location", location), zap.Error(err))
		return fmt.Errorf("store terrain: %w", errors.ErrCacheError.Wrap(err))
	}

	kb.logger.Debug("Terrain stored",
		zap.String("location", location),
		zap.Int("bytes", len(payload)),
		zap.Duration("ttl", kb.ttl))
	return nil
}

// GetTerrain returns nil, nil on a miss.
func (kb *knowledgeBase) GetTerrain(ctx context.Context, location string) (*domain.TerrainSnapshot, error) {
	payload, err := kb.client.Get(ctx, terrainKey(location)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		kb.logger.Error("Failed to get terrain", zap.String("location", location), zap.Error(err))
		return nil, fmt.Errorf("load terrain: %w", errors.ErrCacheError.Wrap(err))
	}

	var snapshot domain.TerrainSnapshot
	if err := utils.UnmarshalMsgpack(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("decode terrain snapshot: %w", err)
	}
	return &snapshot, nil
}
