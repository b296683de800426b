package state

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Manager stores how many categories the product-discovery stage has
// fully processed, so an interrupted run resumes behind the checkpoint.
type Manager interface {
	LastCategory(ctx context.Context) (int, error)
	SetLastCategory(ctx context.Context, index int) error
	Clear(ctx context.Context) error
}

type redisManager struct {
	redisClient *redis.Client
	key         string
}

func NewRedisManager(redisClient *redis.Client) Manager {
	return &redisManager{
		redisClient: redisClient,
		key:         "products:progress:category",
	}
}

func (m *redisManager) LastCategory(ctx context.Context) (int, error) {
	val, err := m.redisClient.Get(ctx, m.key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil // no progress saved yet
		}
		return 0, fmt.Errorf("failed to get crawl checkpoint: %w", err)
	}

	index, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("failed to parse crawl checkpoint: %w", err)
	}

	return index, nil
}

func (m *redisManager) SetLastCategory(ctx context.Context, index int) error {
	if err := m.redisClient.Set(ctx, m.key, index, 0).Err(); err != nil {
		return fmt.Errorf("failed to set crawl checkpoint: %w", err)
	}
	return nil
}

func (m *redisManager) Clear(ctx context.Context) error {
	if err := m.redisClient.Del(ctx, m.key).Err(); err != nil {
		return fmt.Errorf("failed to clear crawl checkpoint: %w", err)
	}
	return nil
}
