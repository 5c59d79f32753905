package dto

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/dropDatabas3/bookwookie/internal/domain"
)

// CreateBookRequest publica un libro nuevo.
type CreateBookRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=256"`
	Description string `json:"description" validate:"max=4096"`
	FileID      *int   `json:"fileId,omitempty"`
}

// UpdateBookRequest modifica un libro propio. BookID identifica el
// registro; los punteros distinguen "no tocar" de "setear vacío".
type UpdateBookRequest struct {
	BookID      int     `json:"bookId" validate:"required,gt=0"`
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=256"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=4096"`
	FileID      *int    `json:"fileId,omitempty"`
}

type BookResponse struct {
	ID          int       `json:"bookId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	FileID      *int      `json:"fileId,omitempty"`
	AuthorID    int       `json:"authorId"`
}

func NewBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		FileID:      b.FileID,
		AuthorID:    b.UserID,
	}
}

func NewBookResponses(books []domain.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for i := range books {
		out = append(out, NewBookResponse(&books[i]))
	}
	return out
}

// ParseBookFilter arma el filtro de búsqueda desde la query string.
// Todos los parámetros son opcionales; sin parámetros el filtro queda
// vacío y matchea todo el catálogo.
func ParseBookFilter(q url.Values) (*domain.BookFilter, error) {
	var f domain.BookFilter

	intParam := func(name string, dst **int) error {
		raw := q.Get(name)
		if raw == "" {
			return nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s debe ser un entero", name)
		}
		*dst = &v
		return nil
	}
	strParam := func(name string, dst **string) {
		if raw := q.Get(name); raw != "" {
			*dst = &raw
		}
	}
	timeParam := func(name string, dst **time.Time) error {
		raw := q.Get(name)
		if raw == "" {
			return nil
		}
		// fecha sola o timestamp completo
		for _, layout := range []string{"2006-01-02", time.RFC3339} {
			if t, err := time.Parse(layout, raw); err == nil {
				u := t.UTC()
				*dst = &u
				return nil
			}
		}
		return fmt.Errorf("%s debe ser YYYY-MM-DD o RFC3339", name)
	}

	if err := intParam("bookId", &f.BookID); err != nil {
		return nil, err
	}
	if err := intParam("authorId", &f.AuthorID); err != nil {
		return nil, err
	}
	strParam("authorPseudonym", &f.AuthorPseudonym)
	strParam("authorFirstName", &f.AuthorFirstName)
	strParam("authorLastName", &f.AuthorLastName)
	if err := timeParam("createdOn", &f.CreatedOn); err != nil {
		return nil, err
	}
	if err := timeParam("createdAfter", &f.CreatedAfter); err != nil {
		return nil, err
	}
	if err := timeParam("createdBefore", &f.CreatedBefore); err != nil {
		return nil, err
	}
	strParam("titleEquals", &f.TitleEquals)
	strParam("titleContains", &f.TitleContains)
	strParam("descriptionContains", &f.DescriptionContains)

	return &f, nil
}
