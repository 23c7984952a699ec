package store

import (
	"fmt"
	"strings"

	"github.com/weightlens/weightlens/internal/config"
)

// NewGoalStore creates a GoalStore based on configuration
// Default is the in-memory store if type is not specified
func NewGoalStore(cfg config.StoreConfig) (GoalStore, error) {
	storeType := strings.ToLower(cfg.Type)

	switch storeType {
	case "", "memory":
		return newMemoryStore(), nil

	case "redis":
		return newRedisStore(RedisConfig{
			URL:       cfg.URL,
			KeyPrefix: cfg.KeyPrefix,
		})

	default:
		return nil, fmt.Errorf("unsupported store type: %s (supported: memory, redis)", storeType)
	}
}
