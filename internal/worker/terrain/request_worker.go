package terrain

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/domain/repository"
	"github.com/terrain-analyst/internal/usecase/dto"
	"github.com/terrain-analyst/internal/worker"
)

const (
	publishBackoff = 200 * time.Millisecond
	// defaultReclaimIdle - сколько сообщение может висеть без ACK, прежде чем его заберут
	defaultReclaimIdle = time.Minute
)

// Dispatcher - точка входа аналитика, общая с HTTP /requests
type Dispatcher interface {
	Dispatch(ctx context.Context, raw []byte) any
}

// RequestWorker обрабатывает запросы из stream:terrain:requests
// и публикует ответы в stream:terrain:results.
type RequestWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	dispatcher   Dispatcher
	consumerName string
	maxRetries   int
	reclaimIdle  time.Duration
}

func NewRequestWorker(
	streamRepo repository.StreamRepository,
	dispatcher Dispatcher,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *RequestWorker {
	hostname, _ := os.Hostname()
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &RequestWorker{
		BaseWorker:   worker.NewBaseWorker("terrain-requests", consumerGroup, logger),
		streamRepo:   streamRepo,
		dispatcher:   dispatcher,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		maxRetries:   maxRetries,
		reclaimIdle:  defaultReclaimIdle,
	}
}

// WithReclaimIdle задаёт порог простоя для XAUTOCLAIM; он же период проверки PEL.
func (w *RequestWorker) WithReclaimIdle(d time.Duration) *RequestWorker {
	if d > 0 {
		w.reclaimIdle = d
	}
	return w
}

func (w *RequestWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting terrain request worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamTerrainRequests, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	runCtx, cancel := w.Context(ctx)
	defer cancel()

	// Запросы, оставшиеся без ACK от прошлых запусков или упавших воркеров
	w.reclaim(runCtx)

	messages, err := w.streamRepo.ConsumeStream(runCtx, domain.StreamTerrainRequests, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	ticker := time.NewTicker(w.reclaimIdle)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.reclaim(runCtx)
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return nil
			}
			w.handle(runCtx, msg)
		}
	}
}

// handle dispatches one request. Messages are acked once a result is
// published; unparseable messages are acked immediately so they never block the group.
func (w *RequestWorker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	var event domain.TerrainRequestEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse request, skipping", zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	result := w.dispatcher.Dispatch(ctx, event.Payload)
	resultEvent := domain.TerrainResultEvent{RequestID: event.RequestID, Result: result}
	if errResult, ok := result.(*dto.ErrorResult); ok {
		resultEvent.Result = nil
		resultEvent.Error = errResult.Error
	}

	if err := w.publish(ctx, resultEvent); err != nil {
		// Без ACK сообщение остаётся в PEL; reclaim заберёт его через reclaimIdle
		logger.Error("Failed to publish result",
			zap.String("request_id", event.RequestID.String()),
			zap.Error(err))
		return
	}

	w.ack(ctx, msg.ID)
	logger.Debug("Request processed", zap.String("request_id", event.RequestID.String()))
}

// reclaim re-handles group entries left unacked for longer than reclaimIdle.
func (w *RequestWorker) reclaim(ctx context.Context) {
	msgs, err := w.streamRepo.ClaimPending(ctx, domain.StreamTerrainRequests, w.ConsumerGroup(), w.consumerName, w.reclaimIdle)
	if err != nil {
		w.Logger().Warn("Failed to claim pending requests", zap.Error(err))
	}
	for _, msg := range msgs {
		// остаток подберёт следующий воркер
		if ctx.Err() != nil || w.IsStopped() {
			return
		}
		w.handle(ctx, msg)
	}
}

func (w *RequestWorker) publish(ctx context.Context, event domain.TerrainResultEvent) error {
	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err = w.streamRepo.PublishToStream(ctx, domain.StreamTerrainResults, event); err == nil {
			return nil
		}
		if attempt == w.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(publishBackoff * time.Duration(attempt)):
		}
	}
	return fmt.Errorf("publish failed after %d attempts: %w", w.maxRetries, err)
}

func (w *RequestWorker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamTerrainRequests, w.ConsumerGroup(), id); err != nil {
		w.Logger().Error("Failed to ack message", zap.String("message_id", id), zap.Error(err))
	}
}
