package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/plazakit/plaza/pkg/cache"
)

func TestMemoryGetSet(t *testing.T) {
	t.Parallel()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		_, err := c.Get(context.Background(), "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "answer", 42, time.Minute))

		val, err := c.Get(ctx, "answer")
		require.NoError(t, err)
		require.Equal(t, 42, val)
	})

	t.Run("set overwrites", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", "old", time.Minute))
		require.NoError(t, c.Set(ctx, "k", "new", time.Minute))

		val, err := c.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "new", val)
	})

	t.Run("struct values", func(t *testing.T) {
		t.Parallel()

		type banner struct {
			Title string
			Color string
		}

		c := cache.NewMemory[banner]()
		defer c.Close()

		ctx := context.Background()
		want := banner{Title: "Community", Color: "#0291db"}
		require.NoError(t, c.Set(ctx, "theme.banner", want, time.Minute))

		got, err := c.Get(ctx, "theme.banner")
		require.NoError(t, err)
		require.Equal(t, want, got)
	})
}

func TestMemoryExpiry(t *testing.T) {
	t.Parallel()

	t.Run("expired entries are gone", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithSweepInterval(0))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", "v", 10*time.Millisecond))

		time.Sleep(20 * time.Millisecond)

		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)

		ok, err := c.Has(ctx, "k")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("negative ttl never expires", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](
			cache.WithDefaultTTL(time.Nanosecond),
			cache.WithSweepInterval(0),
		)
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", "v", -1))

		time.Sleep(5 * time.Millisecond)

		val, err := c.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "v", val)
	})

	t.Run("zero ttl uses default", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](
			cache.WithDefaultTTL(10*time.Millisecond),
			cache.WithSweepInterval(0),
		)
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "k", "v", 0))

		time.Sleep(20 * time.Millisecond)

		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("sweeper removes expired entries", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithSweepInterval(10 * time.Millisecond))
		defer c.Close()

		evicted := make(chan string, 1)
		c.SetEvictCallback(func(key string, _ string) {
			select {
			case evicted <- key:
			default:
			}
		})

		require.NoError(t, c.Set(context.Background(), "stale", "v", 5*time.Millisecond))

		select {
		case key := <-evicted:
			require.Equal(t, "stale", key)
		case <-time.After(time.Second):
			t.Fatal("sweeper did not evict expired entry")
		}
	})
}

func TestMemoryLRU(t *testing.T) {
	t.Parallel()

	t.Run("evicts least recently used at cap", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithMaxEntries(2), cache.WithSweepInterval(0))
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
		require.NoError(t, c.Set(ctx, "b", 2, time.Minute))

		// Touch "a" so "b" becomes the oldest.
		_, err := c.Get(ctx, "a")
		require.NoError(t, err)

		require.NoError(t, c.Set(ctx, "c", 3, time.Minute))

		_, err = c.Get(ctx, "b")
		require.ErrorIs(t, err, cache.ErrNotFound)

		for _, key := range []string{"a", "c"} {
			_, err := c.Get(ctx, key)
			require.NoError(t, err, "key %q should survive", key)
		}
	})

	t.Run("eviction fires callback", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithMaxEntries(1), cache.WithSweepInterval(0))
		defer c.Close()

		var mu sync.Mutex
		var gone []string
		c.SetEvictCallback(func(key string, _ int) {
			mu.Lock()
			gone = append(gone, key)
			mu.Unlock()
		})

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
		require.NoError(t, c.Set(ctx, "b", 2, time.Minute))

		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, []string{"a"}, gone)
	})
}

func TestMemoryClearAndClose(t *testing.T) {
	t.Parallel()

	t.Run("clear empties the cache", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		ctx := context.Background()
		require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
		require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
		require.NoError(t, c.Clear(ctx))

		_, err := c.Get(ctx, "a")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("closed cache rejects writes", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		require.NoError(t, c.Close())
		require.NoError(t, c.Close()) // idempotent

		err := c.Set(context.Background(), "k", 1, time.Minute)
		require.ErrorIs(t, err, cache.ErrClosed)
	})
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()

	t.Run("loads on miss and caches", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		var calls atomic.Int32

		load := func(ctx context.Context) (string, time.Duration, error) {
			calls.Add(1)
			return "loaded", time.Minute, nil
		}

		val, err := cache.GetOrSet(ctx, c, "k", load)
		require.NoError(t, err)
		require.Equal(t, "loaded", val)

		val, err = cache.GetOrSet(ctx, c, "k", load)
		require.NoError(t, err)
		require.Equal(t, "loaded", val)

		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("concurrent misses share one load", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		var calls atomic.Int32
		release := make(chan struct{})

		load := func(ctx context.Context) (string, time.Duration, error) {
			calls.Add(1)
			<-release
			return "shared", time.Minute, nil
		}

		var wg sync.WaitGroup
		results := make([]string, 8)
		errs := make([]error, 8)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i], errs[i] = cache.GetOrSet(ctx, c, "hot", load)
			}()
		}

		time.Sleep(10 * time.Millisecond)
		close(release)
		wg.Wait()

		require.Equal(t, int32(1), calls.Load())
		for i, v := range results {
			require.NoError(t, errs[i])
			require.Equal(t, "shared", v)
		}
	})

	t.Run("load errors are not cached", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		boom := errors.New("source down")

		_, err := cache.GetOrSet(ctx, c, "k", func(ctx context.Context) (string, time.Duration, error) {
			return "", 0, boom
		})
		require.ErrorIs(t, err, boom)

		_, err = c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})
}

func TestKey(t *testing.T) {
	t.Parallel()

	require.Equal(t, "permissions.user.34", cache.Key("permissions", "user", "34"))
	require.Equal(t, "single", cache.Key("single"))
	require.Equal(t, "", cache.Key())
}
