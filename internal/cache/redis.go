package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const tagListKey = "tags:all"

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient() (*RedisClient, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

// GetTagList returns the cached tag list; the second result is false on
// a cache miss.
func (r *RedisClient) GetTagList(ctx context.Context) ([]string, bool, error) {
	data, err := r.client.Get(ctx, tagListKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get tag list from Redis: %w", err)
	}

	var tags []string
	if err := json.Unmarshal([]byte(data), &tags); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached tag list: %w", err)
	}
	return tags, true, nil
}

func (r *RedisClient) SetTagList(ctx context.Context, tags []string, ttl time.Duration) error {
	data, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tag list: %w", err)
	}

	if err := r.client.Set(ctx, tagListKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store tag list in Redis: %w", err)
	}
	return nil
}

// InvalidateTagList drops the cached list after a write that may have
// changed the distinct tag set.
func (r *RedisClient) InvalidateTagList(ctx context.Context) error {
	return r.client.Del(ctx, tagListKey).Err()
}
