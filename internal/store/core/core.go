// Package core define los contratos de persistencia que implementan
// los backends (pg, memory).
package core

import (
	"context"

	"github.com/dropDatabas3/bookwookie/internal/domain"
)

// UserRepository maneja la persistencia de usuarios.
type UserRepository interface {
	// Create inserta el usuario y rellena ID. Retorna domain.ErrConflict
	// si el username ya existe.
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int) error
}

// BookRepository maneja la persistencia de libros.
type BookRepository interface {
	// Create inserta el libro y rellena ID/CreatedAt. Retorna
	// domain.ErrConflict si ya existe un libro con el mismo título.
	Create(ctx context.Context, b *domain.Book) error
	GetByID(ctx context.Context, id int) (*domain.Book, error)
	// List devuelve los libros que matchean el filtro (todos si el
	// filtro es nil o vacío).
	List(ctx context.Context, f *domain.BookFilter) ([]domain.Book, error)
	Update(ctx context.Context, b *domain.Book) error
	Delete(ctx context.Context, id int) error
}

// FileRepository maneja la metadata de archivos subidos.
type FileRepository interface {
	Create(ctx context.Context, f *domain.File) error
	GetByID(ctx context.Context, id int) (*domain.File, error)
	ListByUser(ctx context.Context, userID int) ([]domain.File, error)
	Update(ctx context.Context, f *domain.File) error
	Delete(ctx context.Context, id int) error
}

// Store agrupa los repositorios de un backend.
type Store interface {
	Users() UserRepository
	Books() BookRepository
	Files() FileRepository
	Ping(ctx context.Context) error
	Close()
}
