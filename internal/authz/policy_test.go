package authz

import (
	"testing"

	"github.com/dropDatabas3/bookwookie/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testPolicy() Policy {
	return Policy{
		RestrictedUsernames:  []string{"_Darth Vader_"},
		RestrictedPseudonyms: []string{"Darth Vader"},
		RestrictedNames:      []string{"Anakin Skywalker"},
		SuperuserUsernames:   []string{"Yoda"},
	}
}

func TestResolveNilUser(t *testing.T) {
	assert.Equal(t, None, testPolicy().Resolve(nil))
}

func TestResolveDefaultIsDelete(t *testing.T) {
	u := &domain.User{ID: 7, Username: "bob", FirstName: "Bob"}
	assert.Equal(t, Delete, testPolicy().Resolve(u))
}

func TestResolveSuperuser(t *testing.T) {
	u := &domain.User{ID: 1, Username: "Yoda"}
	assert.Equal(t, Admin, testPolicy().Resolve(u))

	// case-insensitive
	u.Username = "yoda"
	assert.Equal(t, Admin, testPolicy().Resolve(u))
}

func TestResolveRestrictedIdentities(t *testing.T) {
	p := testPolicy()

	byName := &domain.User{ID: 2, Username: "DarthVader", FirstName: "Anakin", LastName: "Skywalker"}
	assert.Equal(t, View, p.Resolve(byName))

	byPseudonym := &domain.User{ID: 3, Username: "whoever", Pseudonym: "Darth Vader"}
	assert.Equal(t, View, p.Resolve(byPseudonym))

	byUsername := &domain.User{ID: 4, Username: "_Darth Vader_"}
	assert.Equal(t, View, p.Resolve(byUsername))
}

func TestRestrictedBeatsSuperuser(t *testing.T) {
	// matchea la restricción por nombre Y la lista de superusers:
	// la restricción tiene prioridad
	u := &domain.User{ID: 5, Username: "Yoda", FirstName: "Anakin", LastName: "Skywalker"}
	assert.Equal(t, View, testPolicy().Resolve(u))
}

func TestLevelOrdering(t *testing.T) {
	assert.True(t, None < View)
	assert.True(t, View < Update)
	assert.True(t, Update < Create)
	assert.True(t, Create < Delete)
	assert.True(t, Delete < Admin)
}

func TestParseLevelRoundTrip(t *testing.T) {
	for _, l := range []Level{None, View, Update, Create, Delete, Admin} {
		got, ok := ParseLevel(l.String())
		assert.True(t, ok)
		assert.Equal(t, l, got)
	}
	got, ok := ParseLevel("emperor")
	assert.False(t, ok)
	assert.Equal(t, None, got)
}

func TestRequiredFor(t *testing.T) {
	cases := map[string]Level{
		"get":    View,
		"Get":    View,
		"list":   View,
		"update": Update,
		"create": Create,
		"DELETE": Delete,
		// sin clasificar → fail-closed al nivel máximo
		"getall":  Admin,
		"promote": Admin,
		"":        Admin,
	}
	for op, want := range cases {
		assert.Equal(t, want, RequiredFor(op), "operation %q", op)
	}
}
