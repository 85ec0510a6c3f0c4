package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/terrain-analyst/internal/domain"
)

// AnalysisStore is a concurrency-safe in-memory store of the latest analysis per location.
type AnalysisStore struct {
	mu   sync.RWMutex
	data map[string]domain.TerrainSnapshot
}

func NewAnalysisStore() *AnalysisStore {
	return &AnalysisStore{data: make(map[string]domain.TerrainSnapshot)}
}

// Get returns a copy of the stored snapshot, or nil if the location was never analyzed.
func (s *AnalysisStore) Get(_ context.Context, location string) (*domain.TerrainSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.data[location]
	if !ok {
		return nil, nil
	}
	return &snapshot, nil
}

func (s *AnalysisStore) Save(_ context.Context, snapshot *domain.TerrainSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[snapshot.Location] = *snapshot
	return nil
}

// Locations returns analyzed locations in sorted order.
func (s *AnalysisStore) Locations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	locations := make([]string, 0, len(s.data))
	for location := range s.data {
		locations = append(locations, location)
	}
	slices.Sort(locations)
	return locations
}
