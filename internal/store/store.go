// Package store persists the user goal in a pluggable key-value
// backend. Redis is the production backend; the in-memory store serves
// tests and single-process development.
package store

import (
	"context"

	"github.com/weightlens/weightlens/internal/metrics"
)

// GoalStore reads and writes the user goal. Get on a store that holds
// no goal returns a zero Goal and no error.
type GoalStore interface {
	Get(ctx context.Context) (metrics.Goal, error)
	Put(ctx context.Context, goal metrics.Goal) error
	Close() error
}
