// Package cache provee un cache chico multi-backend.
//
// Soporta:
//   - memory (in-process, para desarrollo/testing)
//   - redis (para producción)
//
// Lo consume el rate limiter de login. Las decisiones de permisos y
// ownership NUNCA pasan por acá: se resuelven con datos del request.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indica que la key no existe.
var ErrNotFound = errors.New("cache: key not found")

// Client define las operaciones de cache.
type Client interface {
	// Get obtiene un valor. Retorna ErrNotFound si no existe.
	Get(ctx context.Context, key string) (string, error)

	// Set guarda un valor con TTL. Si ttl es 0, no expira.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete elimina una key.
	Delete(ctx context.Context, key string) error

	// Incr incrementa un contador creándolo con el TTL dado si no existe.
	// Devuelve el valor después de incrementar y el TTL restante.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, time.Duration, error)

	// Ping verifica la conexión.
	Ping(ctx context.Context) error

	// Close cierra la conexión.
	Close() error
}

// Config para construir un cliente.
type Config struct {
	// Kind: "memory" | "redis"
	Kind string

	RedisAddr   string
	RedisDB     int
	RedisPrefix string

	MemoryDefaultTTL time.Duration
}

// New construye el backend según Kind.
func New(cfg Config) (Client, error) {
	switch cfg.Kind {
	case "", "memory":
		ttl := cfg.MemoryDefaultTTL
		if ttl == 0 {
			ttl = 2 * time.Minute
		}
		return NewMemory(ttl), nil
	case "redis":
		return NewRedis(cfg.RedisAddr, cfg.RedisDB, cfg.RedisPrefix), nil
	default:
		return nil, fmt.Errorf("cache: unknown kind %q", cfg.Kind)
	}
}
