// Package password deriva y verifica credenciales con argon2id.
package password

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"
)

// Params parametriza la derivación. Memory está en KiB.
type Params struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	KeyLen      uint32
	SaltLen     uint32

	// MaxConcurrent acota cuántos hashes corren a la vez. Cada hash pide
	// Memory KiB y está tuneado para tardar cerca de un segundo: sin esta
	// cota una ráfaga de logins agota la memoria del proceso.
	MaxConcurrent int64
}

// Default apunta a ~1s por hash en hardware de servidor actual.
var Default = Params{
	Memory:        64 * 1024,
	Time:          3,
	Parallelism:   2,
	KeyLen:        64,
	SaltLen:       128,
	MaxConcurrent: 4,
}

func (p Params) validate() error {
	if p.Memory <= 0 || p.Time <= 0 || p.Parallelism <= 0 {
		return fmt.Errorf("password: invalid argon2 params (m=%d t=%d p=%d)", p.Memory, p.Time, p.Parallelism)
	}
	if p.KeyLen <= 0 || p.SaltLen <= 0 {
		return fmt.Errorf("password: invalid argon2 output sizes (key=%d salt=%d)", p.KeyLen, p.SaltLen)
	}
	if p.MaxConcurrent <= 0 {
		return fmt.Errorf("password: max_concurrent must be positive, got %d", p.MaxConcurrent)
	}
	return nil
}

// Hasher deriva hashes de password. Seguro para uso concurrente.
type Hasher struct {
	params Params
	sem    *semaphore.Weighted
}

// NewHasher valida los parámetros una sola vez al construir. Parámetros
// inválidos son un error de configuración fatal, no un error de request.
func NewHasher(p Params) (*Hasher, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &Hasher{params: p, sem: semaphore.NewWeighted(p.MaxConcurrent)}, nil
}

// CreateSalt genera un salt aleatorio con el CSPRNG del sistema.
func (h *Hasher) CreateSalt() ([]byte, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("password: salt generation: %w", err)
	}
	return salt, nil
}

// Hash deriva el hash de (password, salt). Determinístico: mismos inputs y
// parámetros producen siempre el mismo output. Bloquea mientras espera un
// slot del semáforo; respeta la cancelación del contexto solo durante la
// espera (el cómputo en sí no es cancelable).
func (h *Hasher) Hash(ctx context.Context, password string, salt []byte) ([]byte, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer h.sem.Release(1)

	p := h.params
	return argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Parallelism, p.KeyLen), nil
}

// Verify recomputa el hash y compara en tiempo constante.
func (h *Hasher) Verify(ctx context.Context, password string, salt, expected []byte) (bool, error) {
	got, err := h.Hash(ctx, password, salt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(got, expected) == 1, nil
}
