package pg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/bookwookie/internal/domain"
)

func strp(s string) *string { return &s }

func TestBuildBookWhereEmptyFilter(t *testing.T) {
	where, args := buildBookWhere(nil)
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = buildBookWhere(&domain.BookFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildBookWhereNumbersPlaceholders(t *testing.T) {
	id := 3
	where, args := buildBookWhere(&domain.BookFilter{
		BookID:        &id,
		TitleContains: strp("Dark"),
	})

	require.Len(t, where, 2)
	require.Len(t, args, 2)
	assert.Equal(t, "b.id = $1", where[0])
	// position() es case-sensitive, igual que el predicado en memoria
	assert.Equal(t, "position($2 in b.title) > 0", where[1])
}

func TestBuildBookWhereCreatedOnComparesUTCDates(t *testing.T) {
	on := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
	where, args := buildBookWhere(&domain.BookFilter{CreatedOn: &on})

	require.Len(t, where, 1)
	// ambos lados castean vía UTC; un ::date pelado dependería del
	// TimeZone de la sesión
	assert.Equal(t, "(b.created_at AT TIME ZONE 'UTC')::date = ($1 AT TIME ZONE 'UTC')::date", where[0])
	require.Len(t, args, 1)
	assert.Equal(t, on, args[0])
}
