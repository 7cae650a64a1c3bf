package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a generic key-value cache with TTL support.
//
// Set TTL semantics: a positive duration expires the entry after that
// long, zero uses the cache's configured default, and a negative
// duration never expires.
type Cache[V any] interface {
	// Get retrieves a value. Missing or expired keys return ErrNotFound.
	Get(ctx context.Context, key string) (V, error)

	// Set stores a value under the key with the given TTL.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Has reports whether a key exists and has not expired.
	Has(ctx context.Context, key string) (bool, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases background resources.
	Close() error
}

// Key joins parts into a dotted cache key, the same spelling the rest
// of the platform uses for cached values ("permissions.user.34").
func Key(parts ...string) string {
	return strings.Join(parts, ".")
}

// Marshaler converts values to and from bytes for backends that store
// byte strings (Redis).
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

type jsonMarshaler[V any] struct{}

func (jsonMarshaler[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (jsonMarshaler[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

var loadGroup singleflight.Group

type loadResult[V any] struct {
	val V
	ttl time.Duration
}

// GetOrSet returns the cached value for key, or calls load to compute
// and store it. Concurrent misses on the same key share a single load
// call, so a hot key never stampedes its source.
//
// load returns the value, the TTL to cache it under, and an error. On
// error nothing is cached.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, load func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := loadGroup.Do(key, func() (any, error) {
		val, ttl, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return loadResult[V]{val: val, ttl: ttl}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	r := v.(loadResult[V])

	// Caching the result is best effort.
	_ = c.Set(ctx, key, r.val, r.ttl)

	return r.val, nil
}
