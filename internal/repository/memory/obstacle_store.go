package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/terrain-analyst/internal/domain"
)

// ObstacleStore keeps the obstacle list derived from the current analysis of each location.
type ObstacleStore struct {
	mu   sync.RWMutex
	data map[string][]domain.Obstacle
}

func NewObstacleStore() *ObstacleStore {
	return &ObstacleStore{data: make(map[string][]domain.Obstacle)}
}

// Get distinguishes an empty list (identified, nothing found) from a missing one.
func (s *ObstacleStore) Get(_ context.Context, location string) ([]domain.Obstacle, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obstacles, ok := s.data[location]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(obstacles), true, nil
}

func (s *ObstacleStore) Save(_ context.Context, location string, obstacles []domain.Obstacle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if obstacles == nil {
		obstacles = []domain.Obstacle{}
	}
	s.data[location] = slices.Clone(obstacles)
	return nil
}

func (s *ObstacleStore) Invalidate(_ context.Context, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, location)
	return nil
}
