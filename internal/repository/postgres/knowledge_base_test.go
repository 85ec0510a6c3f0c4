package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/repository/postgres"
	"github.com/terrain-analyst/internal/repository/postgres/testhelpers"
)

const (
	ridge  = "test_pg_north_ridge"
	valley = "test_pg_dry_valley"
)

// KnowledgeBaseTestSuite тестирует постоянную базу знаний
type KnowledgeBaseTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	kb     *postgres.KnowledgeBase
	ctx    context.Context
}

func (s *KnowledgeBaseTestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.testDB = testhelpers.SetupTestDB(s.T())
	s.kb = postgres.NewKnowledgeBase(postgres.NewDBForTest(s.testDB.DB, s.testDB.Logger), s.testDB.Logger)
	s.Require().NoError(s.kb.EnsureSchema(s.ctx))
}

func (s *KnowledgeBaseTestSuite) SetupTest() {
	s.Require().NoError(s.testDB.Cleanup(s.ctx, ridge, valley))
}

func (s *KnowledgeBaseTestSuite) TearDownSuite() {
	if s.testDB != nil {
		_ = s.testDB.Cleanup(s.ctx, ridge, valley)
		s.testDB.Close()
	}
}

func snapshotAt(location string, at time.Time, types ...domain.TerrainType) *domain.TerrainSnapshot {
	return &domain.TerrainSnapshot{
		Location:          location,
		Resolution:        domain.DefaultResolution,
		TerrainTypes:      types,
		Elevation:         domain.ElevationRange{Min: 300, Max: 1400},
		Slope:             22,
		WaterBodies:       1,
		VegetationDensity: 0.4,
		SoilType:          domain.SoilClay,
		AnalysisTimestamp: at,
	}
}

func (s *KnowledgeBaseTestSuite) TestGetTerrain_Missing() {
	got, err := s.kb.GetTerrain(s.ctx, ridge)
	s.NoError(err)
	s.Nil(got)
}

func (s *KnowledgeBaseTestSuite) TestUpdateTerrain_UpsertKeepsLatest() {
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	s.Require().NoError(s.kb.UpdateTerrain(s.ctx, ridge, snapshotAt(ridge, first, domain.TerrainMountain)))
	s.Require().NoError(s.kb.UpdateTerrain(s.ctx, ridge, snapshotAt(ridge, second, domain.TerrainForest, domain.TerrainRiver)))

	got, err := s.kb.GetTerrain(s.ctx, ridge)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal([]domain.TerrainType{domain.TerrainForest, domain.TerrainRiver}, got.TerrainTypes)
	s.True(second.Equal(got.AnalysisTimestamp))

	history, err := s.kb.History(s.ctx, ridge, 10)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.True(second.Equal(history[0].AnalysisTimestamp))
	s.True(first.Equal(history[1].AnalysisTimestamp))
}

func (s *KnowledgeBaseTestSuite) TestLocationsWithType() {
	now := time.Now().UTC()
	s.Require().NoError(s.kb.UpdateTerrain(s.ctx, ridge, snapshotAt(ridge, now, domain.TerrainMountain, domain.TerrainForest)))
	s.Require().NoError(s.kb.UpdateTerrain(s.ctx, valley, snapshotAt(valley, now, domain.TerrainDesert)))

	locations, err := s.kb.LocationsWithType(s.ctx, domain.TerrainForest)
	s.Require().NoError(err)
	s.Contains(locations, ridge)
	s.NotContains(locations, valley)
}

func TestKnowledgeBaseTestSuite(t *testing.T) {
	suite.Run(t, new(KnowledgeBaseTestSuite))
}
