package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const headlinesKeyPrefix = "news:headlines:"

// headlinesKey normalizes the topic so "AI" and "ai" share an entry.
func headlinesKey(topic string) string {
	return headlinesKeyPrefix + strings.ToLower(strings.TrimSpace(topic))
}

// GetHeadlines returns cached raw headlines for a topic.
// Returns ErrCacheMiss if nothing is cached.
func (c *Cache) GetHeadlines(ctx context.Context, topic string) ([]string, error) {
	result, err := c.client.LRange(ctx, headlinesKey(topic), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange failed: %w", err)
	}

	if len(result) == 0 {
		return nil, ErrCacheMiss
	}

	return result, nil
}

// SetHeadlines replaces the cached headlines for a topic. Empty lists are not
// cached so a failed fetch never masks a later successful one.
func (c *Cache) SetHeadlines(ctx context.Context, topic string, headlines []string, ttl time.Duration) error {
	if len(headlines) == 0 || ttl <= 0 {
		return nil
	}

	key := headlinesKey(topic)
	values := make([]any, len(headlines))
	for i, h := range headlines {
		values[i] = h
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.RPush(ctx, key, values...)
	pipe.Expire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache headlines: %w", err)
	}

	return nil
}
