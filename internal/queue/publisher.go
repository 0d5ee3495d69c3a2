package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/project-tktt/go-ausjobs/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Publisher pushes raw job fragments to the Redis queue.
type Publisher struct {
	client    *redis.Client
	queueName string
}

// NewPublisher creates a new queue publisher.
func NewPublisher(client *redis.Client, queueName string) *Publisher {
	if queueName == "" {
		queueName = "jobs:fragments"
	}
	return &Publisher{
		client:    client,
		queueName: queueName,
	}
}

// Publish pushes a single fragment to the queue.
func (p *Publisher) Publish(ctx context.Context, frag *domain.RawJobFragment) error {
	data, err := json.Marshal(frag)
	if err != nil {
		return fmt.Errorf("marshal fragment: %w", err)
	}

	if err := p.client.LPush(ctx, p.queueName, data).Err(); err != nil {
		return fmt.Errorf("lpush: %w", err)
	}

	return nil
}

// PublishBatch pushes multiple fragments to the queue in one pipeline.
func (p *Publisher) PublishBatch(ctx context.Context, frags []*domain.RawJobFragment) error {
	if len(frags) == 0 {
		return nil
	}

	pipe := p.client.Pipeline()
	for _, frag := range frags {
		data, err := json.Marshal(frag)
		if err != nil {
			return fmt.Errorf("marshal fragment: %w", err)
		}
		pipe.LPush(ctx, p.queueName, data)
	}

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("pipeline exec: %w", err)
	}

	return nil
}

// QueueLength returns the current queue length.
func (p *Publisher) QueueLength(ctx context.Context) (int64, error) {
	return p.client.LLen(ctx, p.queueName).Result()
}
