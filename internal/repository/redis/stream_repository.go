package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/domain/repository"
)

const (
	dataField    = "data"
	readCount    = 10
	readBlock    = time.Second
	errBackoff   = time.Second
	maxStreamLen = 10000
)

type streamRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewStreamRepository создает репозиторий Redis Streams для запросов и событий аналитика
func NewStreamRepository(client *redis.Client, logger *zap.Logger) repository.StreamRepository {
	return &streamRepository{
		client: client,
		logger: logger,
	}
}

// CreateConsumerGroup создаёт группу с позиции "$"; существующая группа не считается ошибкой
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err == nil {
		r.logger.Info("Consumer group created",
			zap.String("stream", stream),
			zap.String("group", group))
		return nil
	}
	if strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return nil
	}

	r.logger.Error("Failed to create consumer group",
		zap.String("stream", stream),
		zap.String("group", group),
		zap.Error(err))
	return fmt.Errorf("failed to create consumer group: %w", err)
}

// ConsumeStream читает новые сообщения группы до отмены контекста.
// The returned channel is closed when the reader stops.
func (r *streamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	out := make(chan domain.StreamMessage, readCount)

	go func() {
		defer close(out)
		for ctx.Err() == nil {
			batches, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    group,
				Consumer: consumer,
				Streams:  []string{stream, ">"},
				Count:    readCount,
				Block:    readBlock,
			}).Result()
			if err != nil {
				if err == redis.Nil {
					continue
				}
				if ctx.Err() != nil {
					break
				}
				r.logger.Error("Failed to read from stream",
					zap.String("stream", stream),
					zap.String("consumer", consumer),
					zap.Error(err))
				select {
				case <-time.After(errBackoff):
				case <-ctx.Done():
				}
				continue
			}

			for _, batch := range batches {
				for _, msg := range batch.Messages {
					if !r.forward(ctx, out, stream, msg) {
						return
					}
				}
			}
		}
		r.logger.Info("Stream consumer stopped",
			zap.String("stream", stream),
			zap.String("consumer", consumer))
	}()

	return out, nil
}

// forward returns false once ctx is cancelled.
func (r *streamRepository) forward(ctx context.Context, out chan<- domain.StreamMessage, stream string, msg redis.XMessage) bool {
	data, ok := msg.Values[dataField].(string)
	if !ok {
		r.logger.Warn("Message has no data field, dropping",
			zap.String("stream", stream),
			zap.String("message_id", msg.ID))
		return true
	}

	select {
	case out <- domain.StreamMessage{ID: msg.ID, Data: data}:
		return true
	case <-ctx.Done():
		return false
	}
}

// ClaimPending проходит PEL группы через XAUTOCLAIM до конца курсора.
// Entries without a data field come back with empty Data so the caller can ack them.
func (r *streamRepository) ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration) ([]domain.StreamMessage, error) {
	var claimed []domain.StreamMessage
	start := "0-0"
	for {
		msgs, next, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   stream,
			Group:    group,
			Consumer: consumer,
			MinIdle:  minIdle,
			Start:    start,
			Count:    readCount,
		}).Result()
		if err != nil {
			return claimed, fmt.Errorf("failed to claim pending messages: %w", err)
		}
		for _, msg := range msgs {
			data, _ := msg.Values[dataField].(string)
			claimed = append(claimed, domain.StreamMessage{ID: msg.ID, Data: data})
		}
		if next == "0-0" || next == "" {
			break
		}
		start = next
	}

	if len(claimed) > 0 {
		r.logger.Info("Claimed pending messages",
			zap.String("stream", stream),
			zap.String("consumer", consumer),
			zap.Int("count", len(claimed)))
	}
	return claimed, nil
}

func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	if err := r.client.XAck(ctx, stream, group, messageID).Err(); err != nil {
		r.logger.Error("Failed to acknowledge message",
			zap.String("stream", stream),
			zap.String("message_id", messageID),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}
	return nil
}

// PublishToStream кладёт JSON в поле "data"; длина стрима ограничена примерно maxStreamLen
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal stream payload: %w", err)
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: map[string]interface{}{dataField: string(payload)},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Published to stream",
		zap.String("stream", stream),
		zap.String("message_id", id),
		zap.Int("bytes", len(payload)))
	return nil
}
