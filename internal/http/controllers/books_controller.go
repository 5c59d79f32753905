package controllers

import (
	"net/http"

	"github.com/dropDatabas3/bookwookie/internal/http/dto"
	apperrors "github.com/dropDatabas3/bookwookie/internal/http/errors"
	"github.com/dropDatabas3/bookwookie/internal/http/helpers"
	"github.com/dropDatabas3/bookwookie/internal/http/middlewares"
	"github.com/dropDatabas3/bookwookie/internal/http/services"
)

type BooksController struct {
	svc *services.BookService
}

// Get maneja GET /book/get: búsqueda filtrada por query string.
func (c *BooksController) Get(w http.ResponseWriter, r *http.Request) {
	filter, err := dto.ParseBookFilter(r.URL.Query())
	if err != nil {
		apperrors.WriteError(w, r, apperrors.ErrInvalidParameter.WithDetail(err.Error()))
		return
	}

	books, err := c.svc.Search(r.Context(), filter)
	if err != nil {
		apperrors.WriteError(w, r, mapError(err, apperrors.ErrBookNotFound, apperrors.ErrTitleTaken))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.NewBookResponses(books))
}

// Create maneja POST /book/create.
func (c *BooksController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if detail, ok := dto.Check(req); !ok {
		apperrors.WriteError(w, r, apperrors.ErrBadRequest.WithDetail(detail))
		return
	}

	b, err := c.svc.Create(r.Context(), middlewares.GetAuth(r.Context()), req)
	if err != nil {
		apperrors.WriteError(w, r, mapError(err, apperrors.ErrBookNotFound, apperrors.ErrTitleTaken))
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.NewBookResponse(b))
}

// Update maneja POST /book/update (owner-only).
func (c *BooksController) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateBookRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if detail, ok := dto.Check(req); !ok {
		apperrors.WriteError(w, r, apperrors.ErrBadRequest.WithDetail(detail))
		return
	}

	b, err := c.svc.Update(r.Context(), middlewares.GetAuth(r.Context()), req)
	if err != nil {
		apperrors.WriteError(w, r, mapError(err, apperrors.ErrBookNotFound, apperrors.ErrTitleTaken))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.NewBookResponse(b))
}

// Delete maneja DELETE /book/{bookId} (owner-only).
func (c *BooksController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.URLParamInt(w, r, "bookId")
	if !ok {
		return
	}
	if err := c.svc.Delete(r.Context(), middlewares.GetAuth(r.Context()), id); err != nil {
		apperrors.WriteError(w, r, mapError(err, apperrors.ErrBookNotFound, apperrors.ErrTitleTaken))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
