package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/bookwookie/internal/authz"
	"github.com/dropDatabas3/bookwookie/internal/domain"
	"github.com/dropDatabas3/bookwookie/internal/http/dto"
	"github.com/dropDatabas3/bookwookie/internal/token"
)

func uploadFile(t *testing.T, svc *Services, caller token.AuthContext, name string) *domain.File {
	t.Helper()
	f, err := svc.Files.Upload(context.Background(), caller, "cover", name, strings.NewReader("bytes de "+name))
	require.NoError(t, err)
	return f
}

func TestFileUploadAndGet(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	bob := register(t, svc, dto.CreateUserRequest{Username: "bob", Password: "Str0ngPass1"})
	caller := validateToken(t, svc, bob.Token)

	f := uploadFile(t, svc, caller, "cover.png")
	assert.Equal(t, bob.User.ID, f.UserID)
	assert.Equal(t, "cover.png", f.FileName)

	meta, rc, err := svc.Files.Get(ctx, f.ID)
	require.NoError(t, err)
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "bytes de cover.png", string(b))
	assert.Equal(t, f.ID, meta.ID)
}

func TestFileReplaceOwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	bob := register(t, svc, dto.CreateUserRequest{Username: "bob", Password: "Str0ngPass1"})
	eve := register(t, svc, dto.CreateUserRequest{Username: "eve", Password: "Str0ngPass1"})

	f := uploadFile(t, svc, validateToken(t, svc, bob.Token), "cover.png")

	_, err := svc.Files.Replace(ctx, validateToken(t, svc, eve.Token), f.ID, "evil.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, authz.ErrNotOwner)

	got, err := svc.Files.Replace(ctx, validateToken(t, svc, bob.Token), f.ID, "v2.png", strings.NewReader("nuevo"))
	require.NoError(t, err)
	assert.Equal(t, "v2.png", got.FileName)

	_, rc, err := svc.Files.Get(ctx, f.ID)
	require.NoError(t, err)
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "nuevo", string(b))
}

func TestFileDeleteOwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	bob := register(t, svc, dto.CreateUserRequest{Username: "bob", Password: "Str0ngPass1"})
	eve := register(t, svc, dto.CreateUserRequest{Username: "eve", Password: "Str0ngPass1"})

	f := uploadFile(t, svc, validateToken(t, svc, bob.Token), "cover.png")

	err := svc.Files.Delete(ctx, validateToken(t, svc, eve.Token), f.ID)
	assert.ErrorIs(t, err, authz.ErrNotOwner)

	require.NoError(t, svc.Files.Delete(ctx, validateToken(t, svc, bob.Token), f.ID))

	_, _, err = svc.Files.Get(ctx, f.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFileListMine(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	bob := register(t, svc, dto.CreateUserRequest{Username: "bob", Password: "Str0ngPass1"})
	eve := register(t, svc, dto.CreateUserRequest{Username: "eve", Password: "Str0ngPass1"})

	uploadFile(t, svc, validateToken(t, svc, bob.Token), "a.png")
	uploadFile(t, svc, validateToken(t, svc, eve.Token), "b.png")

	mine, err := svc.Files.ListMine(ctx, validateToken(t, svc, bob.Token))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "a.png", mine[0].FileName)
}
