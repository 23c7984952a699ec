package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/weightlens/weightlens/internal/metrics"
)

// Test helper: check if Redis is available
func isRedisAvailable() bool {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return client.Ping(ctx).Err() == nil
}

// Test helper: get Redis URL from env or default
func getRedisURL() string {
	if url := os.Getenv("REDIS_URL"); url != "" {
		return url
	}
	return "redis://localhost:6379"
}

func TestRedisStore_RoundTrip(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	s, err := newRedisStore(RedisConfig{URL: getRedisURL(), KeyPrefix: "weightlens-test"})
	if err != nil {
		t.Fatalf("newRedisStore failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	defer s.client.Del(ctx, s.key)

	goal, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("Get on missing key failed: %v", err)
	}
	if !goal.IsZero() {
		t.Errorf("expected zero goal for missing key, got %+v", goal)
	}

	want := metrics.Goal{Weight: fp(78.5), Date: sp("2025-12-31"), TargetRate: fp(-0.4)}
	if err := s.Put(ctx, want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Weight == nil || *got.Weight != 78.5 {
		t.Errorf("weight = %v, want 78.5", got.Weight)
	}
	if got.Date == nil || *got.Date != "2025-12-31" {
		t.Errorf("date = %v, want 2025-12-31", got.Date)
	}
}

func TestRedisStore_BadURLFallsBackToAddr(t *testing.T) {
	if !isRedisAvailable() {
		t.Skip("Redis not available, skipping test")
	}

	// A bare host:port is not a valid redis:// URL but must still work.
	s, err := newRedisStore(RedisConfig{URL: "localhost:6379"})
	if err != nil {
		t.Fatalf("newRedisStore with bare address failed: %v", err)
	}
	_ = s.Close()
}
