package redis

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpenValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()

		client, err := Open(ctx, "")
		require.Nil(t, client)
		require.ErrorIs(t, err, ErrEmptyConnectionURL)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		t.Parallel()

		for _, url := range []string{
			"http://localhost:6379",
			"localhost:6379",
			"postgres://localhost:6379",
		} {
			client, err := Open(ctx, url)
			require.Nil(t, client, url)
			require.ErrorIs(t, err, ErrFailedToParseURL, url)
		}
	})

	t.Run("malformed URL", func(t *testing.T) {
		t.Parallel()

		client, err := Open(ctx, "redis://localhost:6379/notanumber")
		require.Nil(t, client)
		require.ErrorIs(t, err, ErrFailedToParseURL)
	})
}

func TestOptionsApply(t *testing.T) {
	t.Parallel()

	o := defaultOptions()
	require.Equal(t, 10, o.poolSize)
	require.Equal(t, 3, o.retryAttempts)

	WithPoolSize(20)(o)
	WithMinIdleConns(8)(o)
	WithMaxIdleTime(15 * time.Minute)(o)
	WithMaxActiveTime(45 * time.Minute)(o)
	WithRetry(7, 2*time.Second)(o)
	WithReadTimeout(7 * time.Second)(o)
	WithWriteTimeout(8 * time.Second)(o)
	WithDialTimeout(9 * time.Second)(o)

	require.Equal(t, 20, o.poolSize)
	require.Equal(t, 8, o.minIdleConns)
	require.Equal(t, 15*time.Minute, o.maxIdleTime)
	require.Equal(t, 45*time.Minute, o.maxActiveTime)
	require.Equal(t, 7, o.retryAttempts)
	require.Equal(t, 2*time.Second, o.retryInterval)
	require.Equal(t, 7*time.Second, o.readTimeout)
	require.Equal(t, 8*time.Second, o.writeTimeout)
	require.Equal(t, 9*time.Second, o.dialTimeout)
}

func TestHealthcheckNilClient(t *testing.T) {
	t.Parallel()

	check := Healthcheck(nil)
	require.ErrorIs(t, check(context.Background()), ErrHealthcheckFailed)
}

type closeRecorder struct {
	closed bool
	err    error
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.err
}

var _ io.Closer = (*closeRecorder)(nil)

func TestShutdown(t *testing.T) {
	t.Parallel()

	t.Run("closes the client", func(t *testing.T) {
		t.Parallel()

		rec := &closeRecorder{}
		require.NoError(t, Shutdown(rec)(context.Background()))
		require.True(t, rec.closed)
	})

	t.Run("propagates close errors", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("close failed")
		rec := &closeRecorder{err: boom}
		require.ErrorIs(t, Shutdown(rec)(context.Background()), boom)
		require.True(t, rec.closed)
	})
}

func TestWaitRespectsContext(t *testing.T) {
	t.Parallel()

	t.Run("cancelled context returns immediately", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		err := wait(ctx, 10*time.Second)

		require.ErrorIs(t, err, context.Canceled)
		require.Less(t, time.Since(start), time.Second)
	})

	t.Run("full wait without cancellation", func(t *testing.T) {
		t.Parallel()

		start := time.Now()
		require.NoError(t, wait(context.Background(), 50*time.Millisecond))
		require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})
}
