package rate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/bookwookie/internal/cache"
)

func backends(t *testing.T) map[string]cache.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return map[string]cache.Client{
		"memory": cache.NewMemory(time.Minute),
		"redis":  cache.NewRedis(mr.Addr(), 0, "test:"),
	}
}

func TestAllowWithinLimit(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			l := NewWindowLimiter(c, "", 3, time.Minute)

			for i := 0; i < 3; i++ {
				res, err := l.Allow(ctx, "bob 1.2.3.4")
				require.NoError(t, err)
				assert.True(t, res.Allowed)
				assert.Equal(t, int64(2-i), res.Remaining)
			}
		})
	}
}

func TestBlocksOverLimit(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			l := NewWindowLimiter(c, "", 2, time.Minute)

			_, err := l.Allow(ctx, "k")
			require.NoError(t, err)
			_, err = l.Allow(ctx, "k")
			require.NoError(t, err)

			res, err := l.Allow(ctx, "k")
			require.NoError(t, err)
			assert.False(t, res.Allowed)
			assert.Equal(t, int64(0), res.Remaining)
			assert.Greater(t, res.RetryAfter, time.Duration(0))
		})
	}
}

func TestKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			l := NewWindowLimiter(c, "", 1, time.Minute)

			res, err := l.Allow(ctx, "alice")
			require.NoError(t, err)
			assert.True(t, res.Allowed)

			res, err = l.Allow(ctx, "alice")
			require.NoError(t, err)
			assert.False(t, res.Allowed)

			res, err = l.Allow(ctx, "bob")
			require.NoError(t, err)
			assert.True(t, res.Allowed)
		})
	}
}
