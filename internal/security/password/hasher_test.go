package password

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testParams: memoria baja para que la suite corra rápido.
func testParams() Params {
	return Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32, SaltLen: 16, MaxConcurrent: 2}
}

func TestSaltsDiffer(t *testing.T) {
	h, err := NewHasher(testParams())
	require.NoError(t, err)

	s1, err := h.CreateSalt()
	require.NoError(t, err)
	s2, err := h.CreateSalt()
	require.NoError(t, err)

	assert.Len(t, s1, 16)
	assert.NotEqual(t, s1, s2)
}

func TestHashDeterministicPerSalt(t *testing.T) {
	h, err := NewHasher(testParams())
	require.NoError(t, err)
	ctx := context.Background()

	s1, _ := h.CreateSalt()
	s2, _ := h.CreateSalt()

	h1, err := h.Hash(ctx, "Str0ngPass1", s1)
	require.NoError(t, err)
	h2, err := h.Hash(ctx, "Str0ngPass1", s1)
	require.NoError(t, err)
	h3, err := h.Hash(ctx, "Str0ngPass1", s2)
	require.NoError(t, err)

	// mismo password + mismo salt → mismo hash
	assert.Equal(t, h1, h2)
	// mismo password + distinto salt → distinto hash
	assert.NotEqual(t, h1, h3)
}

func TestVerify(t *testing.T) {
	h, err := NewHasher(testParams())
	require.NoError(t, err)
	ctx := context.Background()

	salt, _ := h.CreateSalt()
	hash, err := h.Hash(ctx, "Str0ngPass1", salt)
	require.NoError(t, err)

	ok, err := h.Verify(ctx, "Str0ngPass1", salt, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(ctx, "wrongpassword", salt, hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInvalidParamsRejectedAtConstruction(t *testing.T) {
	bad := testParams()
	bad.Memory = 0
	_, err := NewHasher(bad)
	assert.Error(t, err)

	bad = testParams()
	bad.MaxConcurrent = 0
	_, err = NewHasher(bad)
	assert.Error(t, err)
}

func TestHashRespectsContextWhileQueued(t *testing.T) {
	h, err := NewHasher(testParams())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// con el contexto ya cancelado, Acquire falla antes de computar
	salt, _ := h.CreateSalt()
	_, err = h.Hash(ctx, "whatever1", salt)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPolicy(t *testing.T) {
	p := DefaultPolicy

	assert.Error(t, p.Check(""))
	assert.Error(t, p.Check("test123")) // 7 chars
	assert.NoError(t, p.Check("Str0ngPass1"))
	assert.NoError(t, p.Check("12345678"))
}
