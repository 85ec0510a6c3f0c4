package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// defaultShutdownTimeout - если в конфиге таймаут не задан
	defaultShutdownTimeout = 30 * time.Second
	defaultRestartDelay    = 2 * time.Second
)

// WorkerManager запускает воркеры, перезапускает упавшие и дожидается их остановки.
type WorkerManager struct {
	logger          *zap.Logger
	shutdownTimeout time.Duration
	restartDelay    time.Duration

	mu       sync.Mutex
	workers  []Worker
	wg       sync.WaitGroup
	stopping chan struct{}
	stopOnce sync.Once
}

func NewWorkerManager(shutdownTimeout time.Duration, logger *zap.Logger) *WorkerManager {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return &WorkerManager{
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
		restartDelay:    defaultRestartDelay,
		stopping:        make(chan struct{}),
	}
}

// WithRestartDelay меняет паузу между перезапусками упавшего воркера.
func (m *WorkerManager) WithRestartDelay(d time.Duration) *WorkerManager {
	if d > 0 {
		m.restartDelay = d
	}
	return m
}

func (m *WorkerManager) Register(w Worker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workers = append(m.workers, w)
	m.logger.Info("Worker registered", zap.String("name", w.Name()))
}

func (m *WorkerManager) snapshot() []Worker {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Worker(nil), m.workers...)
}

// Start runs every registered worker in its own goroutine and returns immediately.
// A worker whose Start fails is restarted after restartDelay until Stop or ctx ends.
func (m *WorkerManager) Start(ctx context.Context) error {
	workers := m.snapshot()
	if len(workers) == 0 {
		return fmt.Errorf("no workers registered")
	}

	m.logger.Info("Starting workers", zap.Int("count", len(workers)))

	for _, w := range workers {
		m.wg.Add(1)
		go func(w Worker) {
			defer m.wg.Done()
			m.supervise(ctx, w)
		}(w)
	}

	return nil
}

func (m *WorkerManager) supervise(ctx context.Context, w Worker) {
	log := m.logger.With(zap.String("name", w.Name()))
	for attempt := 1; ; attempt++ {
		log.Info("Starting worker", zap.Int("attempt", attempt))
		err := w.Start(ctx)
		if err == nil || ctx.Err() != nil {
			return
		}
		log.Error("Worker failed, restarting",
			zap.Error(err),
			zap.Duration("delay", m.restartDelay))

		select {
		case <-ctx.Done():
			return
		case <-m.stopping:
			return
		case <-time.After(m.restartDelay):
		}
	}
}

// Stop signals all workers and waits up to the shutdown timeout.
func (m *WorkerManager) Stop() error {
	m.stopOnce.Do(func() { close(m.stopping) })

	workers := m.snapshot()
	m.logger.Info("Stopping workers", zap.Int("count", len(workers)))

	for _, w := range workers {
		if err := w.Stop(); err != nil {
			m.logger.Error("Failed to stop worker",
				zap.String("name", w.Name()),
				zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("All workers stopped gracefully")
		return nil
	case <-time.After(m.shutdownTimeout):
		m.logger.Warn("Workers shutdown timed out, unacked requests will be reclaimed by the next worker",
			zap.Duration("timeout", m.shutdownTimeout))
		return fmt.Errorf("workers shutdown timed out after %v", m.shutdownTimeout)
	}
}
