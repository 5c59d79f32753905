package authz

import (
	"testing"
	"time"

	"github.com/dropDatabas3/bookwookie/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAssertOwner(t *testing.T) {
	book := &domain.Book{ID: 10, Title: "x", CreatedAt: time.Now(), UserID: 1}

	assert.NoError(t, AssertOwner(book, 1))

	// el caller 2 tiene nivel Delete, pero el libro es del 1: rechazado igual
	err := AssertOwner(book, 2)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestAssertOwnerNilResource(t *testing.T) {
	assert.ErrorIs(t, AssertOwner(nil, 1), ErrNotOwner)
}

func TestUserOwnsItself(t *testing.T) {
	u := &domain.User{ID: 3, Username: "bob"}
	assert.NoError(t, AssertOwner(u, 3))
	assert.ErrorIs(t, AssertOwner(u, 4), ErrNotOwner)
}
