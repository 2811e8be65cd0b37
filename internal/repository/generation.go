package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Generation is a Redis counter bumped after every committed mutation.
// Report cache keys embed the current value, so a bump makes every
// cached report unreachable without scanning keys.
type Generation struct {
	rdb *redis.Client
	key string
}

// NewGeneration binds a counter to key.  A nil client yields a counter
// that always reads 0 and ignores bumps.
func NewGeneration(rdb *redis.Client, key string) *Generation {
	return &Generation{rdb: rdb, key: key}
}

// Current returns the counter value, 0 when unset.
func (g *Generation) Current(ctx context.Context) (int64, error) {
	if g == nil || g.rdb == nil {
		return 0, nil
	}
	n, err := g.rdb.Get(ctx, g.key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// Bump increments the counter.
func (g *Generation) Bump(ctx context.Context) error {
	if g == nil || g.rdb == nil {
		return nil
	}
	return g.rdb.Incr(ctx, g.key).Err()
}
