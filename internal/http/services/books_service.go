package services

import (
	"context"
	"errors"

	"github.com/dropDatabas3/bookwookie/internal/authz"
	"github.com/dropDatabas3/bookwookie/internal/domain"
	"github.com/dropDatabas3/bookwookie/internal/http/dto"
	"github.com/dropDatabas3/bookwookie/internal/metrics"
	"github.com/dropDatabas3/bookwookie/internal/observability/logger"
	"github.com/dropDatabas3/bookwookie/internal/token"
)

// BookService maneja el catálogo. Las mutaciones son owner-only.
type BookService struct {
	deps Deps
}

// Create publica un libro a nombre del caller. Si referencia un archivo
// (portada), tiene que existir y ser del caller.
func (s *BookService) Create(ctx context.Context, caller token.AuthContext, in dto.CreateBookRequest) (*domain.Book, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Books.Create"))

	if in.FileID != nil {
		if err := s.assertUsableFile(ctx, caller, *in.FileID); err != nil {
			return nil, err
		}
	}

	b := &domain.Book{
		Title:       in.Title,
		Description: in.Description,
		FileID:      in.FileID,
		UserID:      caller.PrincipalID,
	}
	if err := s.deps.Store.Books().Create(ctx, b); err != nil {
		return nil, err
	}
	log.Info("book created", logger.UserID(caller.PrincipalID))
	return b, nil
}

// Search devuelve los libros que matchean el filtro.
func (s *BookService) Search(ctx context.Context, f *domain.BookFilter) ([]domain.Book, error) {
	return s.deps.Store.Books().List(ctx, f)
}

// Update modifica un libro propio. Fetch primero, ownership después,
// mutación al final.
func (s *BookService) Update(ctx context.Context, caller token.AuthContext, in dto.UpdateBookRequest) (*domain.Book, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Books.Update"))

	b, err := s.deps.Store.Books().GetByID(ctx, in.BookID)
	if err != nil {
		return nil, err
	}
	if err := authz.AssertOwner(b, caller.PrincipalID); err != nil {
		metrics.AuthRejectsTotal.WithLabelValues("not_owner").Inc()
		log.Warn("book update rejected", logger.UserID(caller.PrincipalID))
		return nil, err
	}

	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.FileID != nil {
		if err := s.assertUsableFile(ctx, caller, *in.FileID); err != nil {
			return nil, err
		}
		b.FileID = in.FileID
	}

	if err := s.deps.Store.Books().Update(ctx, b); err != nil {
		return nil, err
	}
	log.Info("book updated", logger.UserID(caller.PrincipalID))
	return b, nil
}

// Delete borra un libro propio.
func (s *BookService) Delete(ctx context.Context, caller token.AuthContext, id int) error {
	b, err := s.deps.Store.Books().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.AssertOwner(b, caller.PrincipalID); err != nil {
		metrics.AuthRejectsTotal.WithLabelValues("not_owner").Inc()
		return err
	}
	if err := s.deps.Store.Books().Delete(ctx, id); err != nil {
		return err
	}
	logger.From(ctx).Info("book deleted", logger.Layer("service"), logger.Op("Books.Delete"), logger.UserID(caller.PrincipalID))
	return nil
}

func (s *BookService) assertUsableFile(ctx context.Context, caller token.AuthContext, fileID int) error {
	f, err := s.deps.Store.Files().GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrFileNotUsable
		}
		return err
	}
	if f.UserID != caller.PrincipalID {
		return ErrFileNotUsable
	}
	return nil
}
