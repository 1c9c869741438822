package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store is a typed key-value store with per-entry expiration.
type Store[V any] interface {
	// Get returns ErrNotFound for missing and expired keys.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	// Take returns the value and removes it in one step. Of several
	// concurrent callers for one key, exactly one succeeds.
	Take(ctx context.Context, key string) (V, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

func encode[V any](v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func decode[V any](data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

var (
	loads singleflight.Group
	// generations counts invalidations per flight key. Keys that were
	// never invalidated have no entry.
	generations sync.Map
)

type loaded[V any] struct {
	val V
}

func flightKey[V any](s Store[V], key string) string {
	return fmt.Sprintf("%T/%p/%s", s, s, key)
}

func generation(flight string) uint64 {
	if g, ok := generations.Load(flight); ok {
		return g.(*atomic.Uint64).Load()
	}
	return 0
}

// GetOrSet returns the cached value for key or computes it with fn.
// Concurrent misses on the same key of the same store share one call to
// fn, which runs without the caller's cancellation. Errors from fn are
// returned and nothing is stored. A value loaded across an Invalidate of
// key is returned to its callers but not stored.
func GetOrSet[V any](ctx context.Context, s Store[V], key string, fn func(context.Context) (V, time.Duration, error)) (V, error) {
	if v, err := s.Get(ctx, key); err == nil {
		return v, nil
	}

	flight := flightKey(s, key)
	res, err, _ := loads.Do(flight, func() (any, error) {
		lctx := context.WithoutCancel(ctx)
		gen := generation(flight)

		v, ttl, err := fn(lctx)
		if err != nil {
			return nil, err
		}

		if generation(flight) == gen {
			_ = s.Set(lctx, key, v, ttl)
			// Invalidate may have run between the check and Set.
			if generation(flight) != gen {
				_ = s.Delete(lctx, key)
			}
		}
		return loaded[V]{val: v}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(loaded[V]).val, nil
}

// Invalidate deletes key from s. A GetOrSet load of key that is in flight
// does not store its result, and later misses start a fresh load.
func Invalidate[V any](ctx context.Context, s Store[V], key string) error {
	flight := flightKey(s, key)
	g, _ := generations.LoadOrStore(flight, new(atomic.Uint64))
	g.(*atomic.Uint64).Add(1)
	loads.Forget(flight)
	return s.Delete(ctx, key)
}
