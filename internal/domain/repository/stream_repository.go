package repository

import (
	"context"
	"time"

	"github.com/terrain-analyst/internal/domain"
)

// StreamRepository - очереди запросов, ответов и событий аналитика (Redis Streams)
type StreamRepository interface {
	// ConsumeStream delivers group messages until ctx is done, then closes the channel.
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// ClaimPending забирает себе сообщения группы, висящие без ACK дольше minIdle
	// (in any consumer's pending list), so failed or orphaned requests get processed again.
	ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration) ([]domain.StreamMessage, error)

	// AckMessage подтверждает обработку сообщения
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// CreateConsumerGroup is idempotent.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream stores data as JSON in the "data" field.
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
