package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type StreamWriter interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Producer appends tasks to a stream. Every entry carries a "type" field.
type Producer struct {
	client StreamWriter
	stream string
	maxLen int64
	now    func() time.Time
}

func NewProducer(client StreamWriter, stream string) *Producer {
	return &Producer{client: client, stream: stream, maxLen: 10000, now: time.Now}
}

func (p *Producer) Enqueue(ctx context.Context, taskType string, fields map[string]any) (string, error) {
	values := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		values[k] = v
	}
	values["type"] = taskType
	values["enqueuedAt"] = p.now().UTC().Format(time.RFC3339)

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: values,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return id, nil
}
