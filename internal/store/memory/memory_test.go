package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/bookwookie/internal/domain"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func TestUserCreateAssignsIDs(t *testing.T) {
	ctx := context.Background()
	s := New()

	a := &domain.User{Username: "bob"}
	b := &domain.User{Username: "alice"}
	require.NoError(t, s.Users().Create(ctx, a))
	require.NoError(t, s.Users().Create(ctx, b))
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
}

func TestUserUsernameUnique(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Users().Create(ctx, &domain.User{Username: "bob"}))
	err := s.Users().Create(ctx, &domain.User{Username: "bob"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// update tampoco puede pisar un username ajeno
	other := &domain.User{Username: "alice"}
	require.NoError(t, s.Users().Create(ctx, other))
	other.Username = "bob"
	assert.ErrorIs(t, s.Users().Update(ctx, other), domain.ErrConflict)
}

func TestUserUsernameUniqueIgnoresCase(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Users().Create(ctx, &domain.User{Username: "Bob"}))

	// otra capitalización sigue siendo el mismo username
	err := s.Users().Create(ctx, &domain.User{Username: "bob"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	other := &domain.User{Username: "alice"}
	require.NoError(t, s.Users().Create(ctx, other))
	other.Username = "BOB"
	assert.ErrorIs(t, s.Users().Update(ctx, other), domain.ErrConflict)
}

func TestUserGetByUsername(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Users().Create(ctx, &domain.User{Username: "bob", FirstName: "Bob"}))

	u, err := s.Users().GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.FirstName)

	// el lookup tampoco distingue mayúsculas
	u, err = s.Users().GetByUsername(ctx, "BOB")
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.FirstName)

	_, err = s.Users().GetByUsername(ctx, "nadie")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserMutationsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := New()

	u := &domain.User{Username: "bob", Salt: []byte{1, 2}}
	require.NoError(t, s.Users().Create(ctx, u))

	// mutar el struct del caller no toca lo guardado
	u.Username = "hacked"
	u.Salt[0] = 9

	got, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
	assert.Equal(t, []byte{1, 2}, got.Salt)
}

func TestBookTitleUnique(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Books().Create(ctx, &domain.Book{Title: "Dune", UserID: 1}))
	err := s.Books().Create(ctx, &domain.Book{Title: "Dune", UserID: 2})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestBookListAppliesFilterWithAuthor(t *testing.T) {
	ctx := context.Background()
	s := New()

	bob := &domain.User{Username: "bob", Pseudonym: "B. Ob"}
	vader := &domain.User{Username: "_Darth Vader_", Pseudonym: "Darth Vader"}
	require.NoError(t, s.Users().Create(ctx, bob))
	require.NoError(t, s.Users().Create(ctx, vader))

	require.NoError(t, s.Books().Create(ctx, &domain.Book{Title: "Sand", UserID: bob.ID}))
	require.NoError(t, s.Books().Create(ctx, &domain.Book{Title: "The Force", UserID: vader.ID}))
	require.NoError(t, s.Books().Create(ctx, &domain.Book{Title: "More Force", UserID: vader.ID}))

	got, err := s.Books().List(ctx, &domain.BookFilter{AuthorPseudonym: strp("Darth Vader")})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "The Force", got[0].Title)

	got, err = s.Books().List(ctx, &domain.BookFilter{TitleContains: strp("Force"), AuthorID: intp(vader.ID)})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// filtro nil = catálogo completo
	got, err = s.Books().List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestBookCreateStampsCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := New()

	b := &domain.Book{Title: "Dune", UserID: 1}
	require.NoError(t, s.Books().Create(ctx, b))
	assert.WithinDuration(t, time.Now().UTC(), b.CreatedAt, time.Minute)
}

func TestFileListByUser(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Files().Create(ctx, &domain.File{FileName: "a.pdf", UserID: 1}))
	require.NoError(t, s.Files().Create(ctx, &domain.File{FileName: "b.pdf", UserID: 2}))
	require.NoError(t, s.Files().Create(ctx, &domain.File{FileName: "c.pdf", UserID: 1}))

	got, err := s.Files().ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a.pdf", got[0].FileName)
	assert.Equal(t, "c.pdf", got[1].FileName)
}

func TestDeleteMissingReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	s := New()

	assert.ErrorIs(t, s.Users().Delete(ctx, 99), domain.ErrNotFound)
	assert.ErrorIs(t, s.Books().Delete(ctx, 99), domain.ErrNotFound)
	assert.ErrorIs(t, s.Files().Delete(ctx, 99), domain.ErrNotFound)
}
