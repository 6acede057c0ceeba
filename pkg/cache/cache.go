package cache

import (
	"context"
	"time"
)

// Cache is the contract the domain layer sees. The redis implementation
// lives in internal/infrastructure/cache; tests can swap in a fake.
type Cache interface {
	// Get unmarshals the cached value into dest. found=false means a
	// cache miss and dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
