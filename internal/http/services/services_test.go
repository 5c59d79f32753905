package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/bookwookie/internal/authz"
	"github.com/dropDatabas3/bookwookie/internal/domain"
	"github.com/dropDatabas3/bookwookie/internal/files"
	"github.com/dropDatabas3/bookwookie/internal/http/dto"
	"github.com/dropDatabas3/bookwookie/internal/security/password"
	"github.com/dropDatabas3/bookwookie/internal/store/memory"
	"github.com/dropDatabas3/bookwookie/internal/token"
)

// testParams: argon2 barato para que la suite corra rápido.
var testParams = password.Params{
	Memory:        8 * 1024,
	Time:          1,
	Parallelism:   1,
	KeyLen:        32,
	SaltLen:       16,
	MaxConcurrent: 2,
}

var testPolicy = authz.Policy{
	RestrictedUsernames:  []string{"_Darth Vader_"},
	RestrictedPseudonyms: []string{"Darth Vader"},
	RestrictedNames:      []string{"Anakin Skywalker"},
	SuperuserUsernames:   []string{"Yoda"},
}

func newTestServices(t *testing.T) *Services {
	t.Helper()

	hasher, err := password.NewHasher(testParams)
	require.NoError(t, err)
	issuer, err := token.NewIssuer([]byte("test-secret"))
	require.NoError(t, err)
	storage, err := files.NewStorage(t.TempDir())
	require.NoError(t, err)

	return New(Deps{
		Store:   memory.New(),
		Hasher:  hasher,
		PwCheck: password.Policy{MinLength: 8},
		Policy:  testPolicy,
		Issuer:  issuer,
		Files:   storage,
	})
}

func register(t *testing.T, svc *Services, req dto.CreateUserRequest) *LoginResult {
	t.Helper()
	res, err := svc.Users.Create(context.Background(), req)
	require.NoError(t, err)
	return res
}

func strp(s string) *string { return &s }

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	reg := register(t, svc, dto.CreateUserRequest{Username: "bob", Password: "Str0ngPass1"})
	assert.NotEmpty(t, reg.Token) // auto-login

	res, err := svc.Auth.Authenticate(ctx, "bob", "Str0ngPass1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)

	// el usuario sin reglas especiales sale con nivel Delete
	ac := validateToken(t, svc, res.Token)
	assert.Equal(t, authz.Delete, ac.Permission)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)
	register(t, svc, dto.CreateUserRequest{Username: "bob", Password: "Str0ngPass1"})

	_, err := svc.Auth.Authenticate(ctx, "bob", "WrongPass99")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// usuario inexistente: mismo error, no filtramos usernames
	_, err = svc.Auth.Authenticate(ctx, "nadie", "Str0ngPass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUsernameIgnoresCase(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)
	reg := register(t, svc, dto.CreateUserRequest{Username: "Bob", Password: "Str0ngPass1"})

	// el username no distingue mayúsculas; el password sí
	res, err := svc.Auth.Authenticate(ctx, "bob", "Str0ngPass1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)
}

func TestRestrictedPseudonymGetsViewToken(t *testing.T) {
	svc := newTestServices(t)

	res := register(t, svc, dto.CreateUserRequest{
		Username:  "anakin",
		Password:  "Str0ngPass1",
		Pseudonym: "Darth Vader",
	})

	ac := validateToken(t, svc, res.Token)
	assert.Equal(t, authz.View, ac.Permission)
}

func TestRestrictedBeatsSuperuser(t *testing.T) {
	svc := newTestServices(t)

	// username de superusuario + pseudónimo restringido: restringido gana
	res := register(t, svc, dto.CreateUserRequest{
		Username:  "Yoda",
		Password:  "Str0ngPass1",
		Pseudonym: "Darth Vader",
	})
	assert.Equal(t, authz.View, validateToken(t, svc, res.Token).Permission)
}

func TestSuperuserGetsAdmin(t *testing.T) {
	svc := newTestServices(t)
	res := register(t, svc, dto.CreateUserRequest{Username: "Yoda", Password: "Str0ngPass1"})
	assert.Equal(t, authz.Admin, validateToken(t, svc, res.Token).Permission)
}

func validateToken(t *testing.T, svc *Services, raw string) token.AuthContext {
	t.Helper()
	ac := svc.Auth.deps.Issuer.Validate(raw)
	require.False(t, ac.IsAnonymous())
	return ac
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestServices(t)
	register(t, svc, dto.CreateUserRequest{Username: "bob", Password: "Str0ngPass1"})

	_, err := svc.Users.Create(context.Background(), dto.CreateUserRequest{Username: "bob", Password: "OtherPass99"})
	assert.Error(t, err)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.Users.Create(context.Background(), dto.CreateUserRequest{Username: "bob", Password: "corta"})
	var perr *password.PolicyError
	assert.ErrorAs(t, err, &perr)
}

func TestUserUpdateSelfOnly(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	bob := register(t, svc, dto.CreateUserRequest{Username: "bob", Password: "Str0ngPass1"})
	eve := register(t, svc, dto.CreateUserRequest{Username: "eve", Password: "Str0ngPass1"})

	caller := validateToken(t, svc, eve.Token)

	// eve intenta editar a bob: rebota en ownership aunque su nivel alcance
	_, err := svc.Users.Update(ctx, caller, bob.User.ID, dto.UpdateUserRequest{FirstName: strp("Hack")})
	assert.ErrorIs(t, err, authz.ErrNotOwner)

	// su propia cuenta sí
	u, err := svc.Users.Update(ctx, caller, eve.User.ID, dto.UpdateUserRequest{FirstName: strp("Eva")})
	require.NoError(t, err)
	assert.Equal(t, "Eva", u.FirstName)
}

func TestPasswordChangeResalts(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	bob := register(t, svc, dto.CreateUserRequest{Username: "bob", Password: "Str0ngPass1"})
	caller := validateToken(t, svc, bob.Token)

	oldSalt := append([]byte(nil), bob.User.Salt...)

	u, err := svc.Users.Update(ctx, caller, bob.User.ID, dto.UpdateUserRequest{Password: strp("NewPass9999")})
	require.NoError(t, err)
	assert.NotEqual(t, oldSalt, u.Salt)

	// la credencial vieja ya no sirve, la nueva sí
	_, err = svc.Auth.Authenticate(ctx, "bob", "Str0ngPass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Auth.Authenticate(ctx, "bob", "NewPass9999")
	assert.NoError(t, err)
}

func TestUserDeleteSelfOnly(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	bob := register(t, svc, dto.CreateUserRequest{Username: "bob", Password: "Str0ngPass1"})
	eve := register(t, svc, dto.CreateUserRequest{Username: "eve", Password: "Str0ngPass1"})

	err := svc.Users.Delete(ctx, validateToken(t, svc, eve.Token), bob.User.ID)
	assert.ErrorIs(t, err, authz.ErrNotOwner)

	require.NoError(t, svc.Users.Delete(ctx, validateToken(t, svc, bob.Token), bob.User.ID))
}

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

func TestBookLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	bob := register(t, svc, dto.CreateUserRequest{Username: "bob", Password: "Str0ngPass1"})
	caller := validateToken(t, svc, bob.Token)

	b, err := svc.Books.Create(ctx, caller, dto.CreateBookRequest{Title: "Dune", Description: "sand"})
	require.NoError(t, err)
	assert.Equal(t, bob.User.ID, b.UserID)

	got, err := svc.Books.Update(ctx, caller, dto.UpdateBookRequest{BookID: b.ID, Description: strp("more sand")})
	require.NoError(t, err)
	assert.Equal(t, "more sand", got.Description)

	require.NoError(t, svc.Books.Delete(ctx, caller, b.ID))

	books, err := svc.Books.Search(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestBookCrossUserDeleteRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	bob := register(t, svc, dto.CreateUserRequest{Username: "bob", Password: "Str0ngPass1"})
	eve := register(t, svc, dto.CreateUserRequest{Username: "eve", Password: "Str0ngPass1"})

	b, err := svc.Books.Create(ctx, validateToken(t, svc, bob.Token), dto.CreateBookRequest{Title: "Dune"})
	require.NoError(t, err)

	// eve tiene nivel Delete pero el libro no es suyo
	err = svc.Books.Delete(ctx, validateToken(t, svc, eve.Token), b.ID)
	assert.ErrorIs(t, err, authz.ErrNotOwner)

	err = svc.Books.Delete(ctx, validateToken(t, svc, bob.Token), b.ID)
	assert.NoError(t, err)
}

func TestBookDuplicateTitle(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	bob := register(t, svc, dto.CreateUserRequest{Username: "bob", Password: "Str0ngPass1"})
	caller := validateToken(t, svc, bob.Token)

	_, err := svc.Books.Create(ctx, caller, dto.CreateBookRequest{Title: "Dune"})
	require.NoError(t, err)
	_, err = svc.Books.Create(ctx, caller, dto.CreateBookRequest{Title: "Dune"})
	assert.Error(t, err)
}

func TestBookSearchFilters(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	vader := register(t, svc, dto.CreateUserRequest{
		Username:  "anakin",
		Password:  "Str0ngPass1",
		Pseudonym: "Lord Vader",
	})
	bob := register(t, svc, dto.CreateUserRequest{Username: "bob", Password: "Str0ngPass1"})

	vc := validateToken(t, svc, vader.Token)
	bc := validateToken(t, svc, bob.Token)

	_, err := svc.Books.Create(ctx, vc, dto.CreateBookRequest{Title: "The Dark Side"})
	require.NoError(t, err)
	_, err = svc.Books.Create(ctx, bc, dto.CreateBookRequest{Title: "the dark side of sand"})
	require.NoError(t, err)

	// titleContains es case-sensitive
	books, err := svc.Books.Search(ctx, &domain.BookFilter{TitleContains: strp("Dark")})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "The Dark Side", books[0].Title)

	books, err = svc.Books.Search(ctx, &domain.BookFilter{AuthorPseudonym: strp("Lord Vader")})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, vader.User.ID, books[0].UserID)
}

func TestBookCoverMustBeOwnFile(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	bob := register(t, svc, dto.CreateUserRequest{Username: "bob", Password: "Str0ngPass1"})
	eve := register(t, svc, dto.CreateUserRequest{Username: "eve", Password: "Str0ngPass1"})

	f := uploadFile(t, svc, validateToken(t, svc, eve.Token), "cover.png")

	_, err := svc.Books.Create(ctx, validateToken(t, svc, bob.Token), dto.CreateBookRequest{
		Title:  "Dune",
		FileID: &f.ID,
	})
	assert.ErrorIs(t, err, ErrFileNotUsable)
}
