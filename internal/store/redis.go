package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/weightlens/weightlens/internal/metrics"
)

// RedisConfig represents Redis goal-store configuration
type RedisConfig struct {
	URL       string // Redis URL (e.g., redis://localhost:6379/0)
	Password  string // Optional password
	DB        int    // Database number (default: 0)
	KeyPrefix string // Key namespace (default: "weightlens")
}

// RedisStore implements GoalStore on a Redis key
type RedisStore struct {
	client *redis.Client
	key    string
}

// newRedisStore creates a new Redis-backed goal store
func newRedisStore(cfg RedisConfig) (*RedisStore, error) {
	// Parse URL or use defaults
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		// Fallback to simple options
		opts = &redis.Options{
			Addr:     cfg.URL,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "weightlens"
	}

	return &RedisStore{
		client: client,
		key:    fmt.Sprintf("%s:goal", prefix),
	}, nil
}

// Get fetches and decodes the goal; a missing key yields a zero goal
func (s *RedisStore) Get(ctx context.Context) (metrics.Goal, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return metrics.Goal{}, nil
	}
	if err != nil {
		return metrics.Goal{}, fmt.Errorf("failed to read goal: %w", err)
	}

	var goal metrics.Goal
	if err := json.Unmarshal(data, &goal); err != nil {
		return metrics.Goal{}, fmt.Errorf("failed to decode goal: %w", err)
	}
	return goal, nil
}

// Put encodes and stores the goal
func (s *RedisStore) Put(ctx context.Context, goal metrics.Goal) error {
	data, err := json.Marshal(goal)
	if err != nil {
		return fmt.Errorf("failed to encode goal: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write goal: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
