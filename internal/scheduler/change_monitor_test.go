package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/scheduler"
)

type MockDetector struct {
	mock.Mock
}

func (m *MockDetector) MonitorTerrainChanges(ctx context.Context, location string) (*domain.ChangeReport, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChangeReport), args.Error(1)
}

type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	return nil, args.Error(1)
}

func (m *MockStreamRepository) ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration) ([]domain.StreamMessage, error) {
	return nil, m.Called(ctx, stream, group, consumer, minIdle).Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	return m.Called(ctx, stream, group, messageID).Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}

var checkedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func flooding(location string) *domain.ChangeReport {
	return &domain.ChangeReport{
		Location:    location,
		CurrentTime: checkedAt,
		DetectedChanges: []domain.TerrainChange{{
			Type:     domain.ChangeIncreasedWaterLevels,
			Severity: domain.SeverityHigh,
		}},
		RequiresReanalysis: true,
	}
}

func TestChangeMonitor_RunOnce(t *testing.T) {
	detector := &MockDetector{}
	publisher := &MockStreamRepository{}

	detector.On("MonitorTerrainChanges", mock.Anything, "river_bend").Return(flooding("river_bend"), nil)
	detector.On("MonitorTerrainChanges", mock.Anything, "dry_plain").
		Return(&domain.ChangeReport{Location: "dry_plain", DetectedChanges: []domain.TerrainChange{}}, nil)
	detector.On("MonitorTerrainChanges", mock.Anything, "never_seen").
		Return(nil, &domain.AnalysisMissingError{Location: "never_seen"})
	detector.On("MonitorTerrainChanges", mock.Anything, "offline").Return(nil, errors.New("weather down"))

	publisher.On("PublishToStream", mock.Anything, domain.StreamTerrainChanges,
		mock.MatchedBy(func(e domain.TerrainChangeEvent) bool {
			return e.Report.Location == "river_bend" && e.DetectedAt.Equal(checkedAt) &&
				e.MaxSeverity == domain.SeverityHigh && e.EventID.String() != ""
		})).Return(nil).Once()

	m := scheduler.NewChangeMonitor(detector, publisher,
		scheduler.StaticLocations([]string{"river_bend", "dry_plain", "never_seen", "offline"}),
		time.Minute, zap.NewNop())

	assert.Equal(t, 1, m.RunOnce(context.Background()))
	detector.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestChangeMonitor_PublishFailureNotCounted(t *testing.T) {
	detector := &MockDetector{}
	publisher := &MockStreamRepository{}

	detector.On("MonitorTerrainChanges", mock.Anything, "river_bend").Return(flooding("river_bend"), nil)
	publisher.On("PublishToStream", mock.Anything, domain.StreamTerrainChanges, mock.Anything).
		Return(errors.New("redis down"))

	m := scheduler.NewChangeMonitor(detector, publisher,
		scheduler.StaticLocations([]string{"river_bend"}), time.Minute, zap.NewNop())

	assert.Equal(t, 0, m.RunOnce(context.Background()))
}

func TestChangeMonitor_StartRunsImmediately(t *testing.T) {
	detector := &MockDetector{}
	publisher := &MockStreamRepository{}

	called := make(chan struct{}, 1)
	detector.On("MonitorTerrainChanges", mock.Anything, "river_bend").
		Run(func(mock.Arguments) {
			select {
			case called <- struct{}{}:
			default:
			}
		}).
		Return(nil, &domain.AnalysisMissingError{Location: "river_bend"})

	m := scheduler.NewChangeMonitor(detector, publisher,
		scheduler.StaticLocations([]string{"river_bend"}), time.Hour, zap.NewNop())
	assert.NoError(t, m.Start())
	defer m.Stop()

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("change monitor did not run")
	}
	publisher.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
}
