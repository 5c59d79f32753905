// Package store expone la factory que elige el backend de persistencia
// según config (postgres para producción, memory para desarrollo y
// tests).
package store

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/bookwookie/internal/store/core"
	"github.com/dropDatabas3/bookwookie/internal/store/memory"
	"github.com/dropDatabas3/bookwookie/internal/store/pg"
)

// Config para la factory.
type Config struct {
	// Driver: "postgres" | "memory"
	Driver string
	DSN    string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

// New construye el store según Driver.
func New(ctx context.Context, cfg Config) (core.Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return memory.New(), nil
	case "postgres":
		return pg.New(ctx, cfg.DSN, pg.PoolConfig{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
