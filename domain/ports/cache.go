package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by CachePort.GetJSON when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

type CachePort interface {
	GetJSON(ctx context.Context, key string, target any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// LockPort is a best-effort distributed mutex keyed by name.
type LockPort interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}
