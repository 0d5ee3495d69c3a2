package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/project-tktt/go-ausjobs/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Consumer pops raw job fragments from the Redis queue.
type Consumer struct {
	client    *redis.Client
	queueName string
	timeout   time.Duration
}

// NewConsumer creates a new queue consumer.
func NewConsumer(client *redis.Client, queueName string, timeout time.Duration) *Consumer {
	if queueName == "" {
		queueName = "jobs:fragments"
	}
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Consumer{
		client:    client,
		queueName: queueName,
		timeout:   timeout,
	}
}

// Consume blocks and waits for one fragment. Returns nil, nil on timeout.
func (c *Consumer) Consume(ctx context.Context) (*domain.RawJobFragment, error) {
	result, err := c.client.BRPop(ctx, c.timeout, c.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Timeout, nothing queued
		}
		return nil, fmt.Errorf("brpop: %w", err)
	}

	if len(result) < 2 {
		return nil, nil
	}

	var frag domain.RawJobFragment
	if err := json.Unmarshal([]byte(result[1]), &frag); err != nil {
		return nil, fmt.Errorf("unmarshal fragment: %w", err)
	}

	return &frag, nil
}

// ConsumeBatch pops up to maxBatch fragments. The first pop uses BRPOP so
// an idle worker blocks instead of spinning; the rest are drained with
// non-blocking RPOPs.
func (c *Consumer) ConsumeBatch(ctx context.Context, maxBatch int) ([]*domain.RawJobFragment, error) {
	frags := make([]*domain.RawJobFragment, 0, maxBatch)

	result, err := c.client.BRPop(ctx, c.timeout, c.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return frags, nil
		}
		return nil, fmt.Errorf("brpop: %w", err)
	}

	if len(result) >= 2 {
		var frag domain.RawJobFragment
		if err := json.Unmarshal([]byte(result[1]), &frag); err == nil {
			frags = append(frags, &frag)
		}
	}

	for i := 1; i < maxBatch; i++ {
		result, err := c.client.RPop(ctx, c.queueName).Result()
		if err != nil {
			if err == redis.Nil {
				break
			}
			return frags, fmt.Errorf("rpop: %w", err)
		}

		var frag domain.RawJobFragment
		if err := json.Unmarshal([]byte(result), &frag); err != nil {
			continue // Skip malformed entries
		}

		frags = append(frags, &frag)
	}

	return frags, nil
}
