package domain

import (
	"strings"
	"time"
)

// BookFilter son los parámetros opcionales de búsqueda de libros.
// Cada campo no-nil agrega exactamente una cláusula AND; un filtro vacío
// matchea todo el catálogo.
type BookFilter struct {
	BookID              *int       `json:"bookId,omitempty"`
	AuthorID            *int       `json:"authorId,omitempty"`
	AuthorPseudonym     *string    `json:"authorPseudonym,omitempty"`
	AuthorFirstName     *string    `json:"authorFirstName,omitempty"`
	AuthorLastName      *string    `json:"authorLastName,omitempty"`
	CreatedOn           *time.Time `json:"createdOn,omitempty"`
	CreatedAfter        *time.Time `json:"createdAfter,omitempty"`
	CreatedBefore       *time.Time `json:"createdBefore,omitempty"`
	TitleEquals         *string    `json:"titleEquals,omitempty"`
	TitleContains       *string    `json:"titleContains,omitempty"`
	DescriptionContains *string    `json:"descriptionContains,omitempty"`
}

// BookPredicate evalúa un libro junto con su autor. El autor puede ser nil
// (registro huérfano); en ese caso las cláusulas de autor no matchean.
type BookPredicate func(b *Book, author *User) bool

// bookClauses es la tabla {campo → constructor de cláusula}. Cada constructor
// devuelve nil cuando su campo no está seteado. Reemplaza el recorrido por
// reflection del diseño anterior: los campos son un esquema fijo y conocido,
// así que se enumeran una sola vez acá.
var bookClauses = []struct {
	field string
	build func(f *BookFilter) BookPredicate
}{
	{"bookId", func(f *BookFilter) BookPredicate {
		if f.BookID == nil {
			return nil
		}
		id := *f.BookID
		return func(b *Book, _ *User) bool { return b.ID == id }
	}},
	{"authorId", func(f *BookFilter) BookPredicate {
		if f.AuthorID == nil {
			return nil
		}
		id := *f.AuthorID
		return func(b *Book, _ *User) bool { return b.UserID == id }
	}},
	{"authorPseudonym", func(f *BookFilter) BookPredicate {
		if f.AuthorPseudonym == nil {
			return nil
		}
		want := *f.AuthorPseudonym
		return func(_ *Book, a *User) bool { return a != nil && a.Pseudonym == want }
	}},
	{"authorFirstName", func(f *BookFilter) BookPredicate {
		if f.AuthorFirstName == nil {
			return nil
		}
		want := *f.AuthorFirstName
		return func(_ *Book, a *User) bool { return a != nil && a.FirstName == want }
	}},
	{"authorLastName", func(f *BookFilter) BookPredicate {
		if f.AuthorLastName == nil {
			return nil
		}
		want := *f.AuthorLastName
		return func(_ *Book, a *User) bool { return a != nil && a.LastName == want }
	}},
	{"createdOn", func(f *BookFilter) BookPredicate {
		if f.CreatedOn == nil {
			return nil
		}
		wy, wm, wd := f.CreatedOn.UTC().Date()
		return func(b *Book, _ *User) bool {
			y, m, d := b.CreatedAt.UTC().Date()
			return y == wy && m == wm && d == wd
		}
	}},
	{"createdAfter", func(f *BookFilter) BookPredicate {
		if f.CreatedAfter == nil {
			return nil
		}
		min := *f.CreatedAfter
		return func(b *Book, _ *User) bool { return !b.CreatedAt.Before(min) }
	}},
	{"createdBefore", func(f *BookFilter) BookPredicate {
		if f.CreatedBefore == nil {
			return nil
		}
		max := *f.CreatedBefore
		return func(b *Book, _ *User) bool { return !b.CreatedAt.After(max) }
	}},
	{"titleEquals", func(f *BookFilter) BookPredicate {
		if f.TitleEquals == nil {
			return nil
		}
		want := *f.TitleEquals
		return func(b *Book, _ *User) bool { return b.Title == want }
	}},
	{"titleContains", func(f *BookFilter) BookPredicate {
		if f.TitleContains == nil {
			return nil
		}
		// substring case-sensitive
		want := *f.TitleContains
		return func(b *Book, _ *User) bool { return strings.Contains(b.Title, want) }
	}},
	{"descriptionContains", func(f *BookFilter) BookPredicate {
		if f.DescriptionContains == nil {
			return nil
		}
		want := *f.DescriptionContains
		return func(b *Book, _ *User) bool { return strings.Contains(b.Description, want) }
	}},
}

// Predicate compone las cláusulas de los campos seteados en un solo AND.
// El filtro vacío devuelve el predicado identidad (matchea todo).
func (f *BookFilter) Predicate() BookPredicate {
	if f == nil {
		return func(*Book, *User) bool { return true }
	}
	var clauses []BookPredicate
	for _, c := range bookClauses {
		if p := c.build(f); p != nil {
			clauses = append(clauses, p)
		}
	}
	if len(clauses) == 0 {
		return func(*Book, *User) bool { return true }
	}
	return func(b *Book, a *User) bool {
		for _, p := range clauses {
			if !p(b, a) {
				return false
			}
		}
		return true
	}
}

// IsEmpty reporta si ningún campo del filtro está seteado.
func (f *BookFilter) IsEmpty() bool {
	if f == nil {
		return true
	}
	for _, c := range bookClauses {
		if c.build(f) != nil {
			return false
		}
	}
	return true
}
