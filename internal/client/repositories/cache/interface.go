package cache

import (
	"context"
	"time"
)

// Entry is a cached blob together with the time it was stored.
type Entry struct {
	Value     []byte
	UpdatedAt time.Time
}

type Repository interface {
	// Get returns (nil, nil) when key is not cached.
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, value []byte, at time.Time) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
