package scheduler

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/domain/repository"
)

const (
	defaultInterval = 15 * time.Minute
	locationTimeout = 30 * time.Second
)

// ChangeDetector - операция monitor_terrain_changes
type ChangeDetector interface {
	MonitorTerrainChanges(ctx context.Context, location string) (*domain.ChangeReport, error)
}

// ChangeMonitor периодически проверяет локации и публикует обнаруженные
// изменения в stream:terrain:changes.
type ChangeMonitor struct {
	scheduler *gocron.Scheduler
	detector  ChangeDetector
	publisher repository.StreamRepository
	locations func() []string
	interval  time.Duration
	logger    *zap.Logger
}

// NewChangeMonitor - locations is consulted on every run, so a store-backed
// source picks up newly analyzed locations.
func NewChangeMonitor(
	detector ChangeDetector,
	publisher repository.StreamRepository,
	locations func() []string,
	interval time.Duration,
	logger *zap.Logger,
) *ChangeMonitor {
	if interval <= 0 {
		interval = defaultInterval
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	return &ChangeMonitor{
		scheduler: s,
		detector:  detector,
		publisher: publisher,
		locations: locations,
		interval:  interval,
		logger:    logger,
	}
}

// StaticLocations adapts a fixed list for NewChangeMonitor.
func StaticLocations(locations []string) func() []string {
	return func() []string { return locations }
}

// Start schedules the monitoring job; the first run happens immediately.
func (m *ChangeMonitor) Start() error {
	_, err := m.scheduler.Every(m.interval).Do(func() {
		m.RunOnce(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule change monitor: %w", err)
	}

	m.scheduler.StartAsync()
	m.logger.Info("Change monitor started", zap.Duration("interval", m.interval))
	return nil
}

func (m *ChangeMonitor) Stop() {
	m.scheduler.Stop()
	m.logger.Info("Change monitor stopped")
}

// RunOnce checks every location and returns how many change events were published.
func (m *ChangeMonitor) RunOnce(ctx context.Context) int {
	published := 0
	for _, location := range m.locations() {
		ok, err := m.check(ctx, location)
		if err != nil {
			m.logger.Error("Change monitoring failed",
				zap.String("location", location),
				zap.Error(err))
			continue
		}
		if ok {
			published++
		}
	}

	m.logger.Debug("Change monitor run completed", zap.Int("published", published))
	return published
}

func (m *ChangeMonitor) check(ctx context.Context, location string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, locationTimeout)
	defer cancel()

	report, err := m.detector.MonitorTerrainChanges(ctx, location)
	if err != nil {
		var missing *domain.AnalysisMissingError
		if stderrors.As(err, &missing) {
			return false, nil
		}
		return false, err
	}
	if len(report.DetectedChanges) == 0 {
		return false, nil
	}

	event := domain.TerrainChangeEvent{
		EventID:     uuid.New(),
		Report:      report,
		MaxSeverity: report.MaxSeverity(),
		DetectedAt:  report.CurrentTime,
	}
	if err := m.publisher.PublishToStream(ctx, domain.StreamTerrainChanges, event); err != nil {
		return false, fmt.Errorf("failed to publish change event: %w", err)
	}

	m.logger.Info("Terrain changes published",
		zap.String("location", location),
		zap.Int("changes", len(report.DetectedChanges)),
		zap.String("max_severity", string(event.MaxSeverity)),
		zap.Bool("requires_reanalysis", report.RequiresReanalysis))
	return true, nil
}
