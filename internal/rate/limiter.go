// Package rate implementa un limiter fixed-window sobre el cache.
package rate

import (
	"context"
	"strings"
	"time"

	"github.com/dropDatabas3/bookwookie/internal/cache"
)

type Result struct {
	Allowed     bool
	Remaining   int64
	RetryAfter  time.Duration
	CurrentHits int64
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// WindowLimiter: fixed window sencillo (incr + expire) sobre cache.Client,
// así funciona igual con el backend memory y con redis.
type WindowLimiter struct {
	Cache  cache.Client
	Prefix string
	Max    int64
	Window time.Duration
}

func NewWindowLimiter(c cache.Client, prefix string, max int, window time.Duration) *WindowLimiter {
	if prefix == "" {
		prefix = "rl:"
	}
	return &WindowLimiter{Cache: c, Prefix: prefix, Max: int64(max), Window: window}
}

func (l *WindowLimiter) Allow(ctx context.Context, key string) (Result, error) {
	key = l.Prefix + strings.ReplaceAll(key, " ", "_")

	hits, ttl, err := l.Cache.Incr(ctx, key, l.Window)
	if err != nil {
		return Result{}, err
	}

	remaining := l.Max - hits
	if remaining < 0 {
		remaining = 0
	}
	res := Result{
		Allowed:     hits <= l.Max,
		Remaining:   remaining,
		CurrentHits: hits,
	}
	if !res.Allowed {
		// retry after: resto de la ventana
		res.RetryAfter = ttl
		if res.RetryAfter <= 0 {
			res.RetryAfter = l.Window
		}
	}
	return res, nil
}
