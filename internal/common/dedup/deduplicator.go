package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduplicator tracks already-published jobs in Redis so crawlers skip
// detail pages they have pushed before. Two keys exist per job: the
// source URL and a (title, company) composite for semantic duplicates
// reposted under a new URL.
type Deduplicator struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
}

// NewDeduplicator creates a Redis-backed deduplicator.
func NewDeduplicator(client *redis.Client, prefix string, defaultTTL time.Duration) *Deduplicator {
	if prefix == "" {
		prefix = "dedup"
	}
	if defaultTTL == 0 {
		defaultTTL = 24 * time.Hour * 30
	}
	return &Deduplicator{
		client:     client,
		prefix:     prefix,
		defaultTTL: defaultTTL,
	}
}

// IsSeen reports whether the job URL has been published before.
func (d *Deduplicator) IsSeen(ctx context.Context, source, jobURL string) (bool, error) {
	exists, err := d.client.Exists(ctx, d.urlKey(source, jobURL)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return exists > 0, nil
}

// MarkSeen records the job URL with the default TTL.
func (d *Deduplicator) MarkSeen(ctx context.Context, source, jobURL string) error {
	err := d.client.Set(ctx, d.urlKey(source, jobURL), time.Now().Unix(), d.defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// IsSeenPosting checks the (title, company) composite key, catching the
// same posting republished under a different URL.
func (d *Deduplicator) IsSeenPosting(ctx context.Context, source, title, company string) (bool, error) {
	exists, err := d.client.Exists(ctx, d.postingKey(source, title, company)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return exists > 0, nil
}

// MarkSeenPosting records the (title, company) composite key.
func (d *Deduplicator) MarkSeenPosting(ctx context.Context, source, title, company string) error {
	err := d.client.Set(ctx, d.postingKey(source, title, company), time.Now().Unix(), d.defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (d *Deduplicator) urlKey(source, jobURL string) string {
	return fmt.Sprintf("%s:%s:url:%s", d.prefix, source, hashKey(jobURL))
}

func (d *Deduplicator) postingKey(source, title, company string) string {
	composite := strings.ToLower(strings.TrimSpace(title)) + "|" + strings.ToLower(strings.TrimSpace(company))
	return fmt.Sprintf("%s:%s:posting:%s", d.prefix, source, hashKey(composite))
}

func hashKey(content string) string {
	h := sha256.Sum256([]byte(content))
	return hex.EncodeToString(h[:16])
}
