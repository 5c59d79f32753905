// Package memory implementa el store en memoria. Se usa en desarrollo
// local y en los tests de servicios; en producción va postgres.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dropDatabas3/bookwookie/internal/domain"
	"github.com/dropDatabas3/bookwookie/internal/store/core"
)

type Store struct {
	mu sync.RWMutex

	users map[int]*domain.User
	books map[int]*domain.Book
	files map[int]*domain.File

	nextUserID int
	nextBookID int
	nextFileID int
}

func New() *Store {
	return &Store{
		users:      make(map[int]*domain.User),
		books:      make(map[int]*domain.Book),
		files:      make(map[int]*domain.File),
		nextUserID: 1,
		nextBookID: 1,
		nextFileID: 1,
	}
}

var _ core.Store = (*Store)(nil)

func (s *Store) Users() core.UserRepository { return (*userRepo)(s) }
func (s *Store) Books() core.BookRepository { return (*bookRepo)(s) }
func (s *Store) Files() core.FileRepository { return (*fileRepo)(s) }

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close()                     {}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.Salt = append([]byte(nil), u.Salt...)
	c.Hash = append([]byte(nil), u.Hash...)
	return &c
}

func cloneBook(b *domain.Book) *domain.Book {
	c := *b
	if b.FileID != nil {
		id := *b.FileID
		c.FileID = &id
	}
	return &c
}

func cloneFile(f *domain.File) *domain.File {
	c := *f
	return &c
}

// ====================== USERS ======================

type userRepo Store

func (r *userRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		// username es único case-insensitive
		if strings.EqualFold(existing.Username, u.Username) {
			return domain.ErrConflict
		}
	}
	u.ID = r.nextUserID
	r.nextUserID++
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *userRepo) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.users {
		if existing.ID != u.ID && strings.EqualFold(existing.Username, u.Username) {
			return domain.ErrConflict
		}
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *userRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// ====================== BOOKS ======================

type bookRepo Store

func (r *bookRepo) Create(_ context.Context, b *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.books {
		if existing.Title == b.Title {
			return domain.ErrConflict
		}
	}
	b.ID = r.nextBookID
	r.nextBookID++
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	r.books[b.ID] = cloneBook(b)
	return nil
}

func (r *bookRepo) GetByID(_ context.Context, id int) (*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneBook(b), nil
}

func (r *bookRepo) List(_ context.Context, f *domain.BookFilter) ([]domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	match := f.Predicate()

	out := make([]domain.Book, 0, len(r.books))
	for _, b := range r.books {
		// el predicado necesita al autor para los campos de autor
		author := r.users[b.UserID]
		if match(b, author) {
			out = append(out, *cloneBook(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *bookRepo) Update(_ context.Context, b *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[b.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.books {
		if existing.ID != b.ID && existing.Title == b.Title {
			return domain.ErrConflict
		}
	}
	r.books[b.ID] = cloneBook(b)
	return nil
}

func (r *bookRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.books, id)
	return nil
}

// ====================== FILES ======================

type fileRepo Store

func (r *fileRepo) Create(_ context.Context, f *domain.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f.ID = r.nextFileID
	r.nextFileID++
	if f.Uploaded.IsZero() {
		f.Uploaded = time.Now().UTC()
	}
	r.files[f.ID] = cloneFile(f)
	return nil
}

func (r *fileRepo) GetByID(_ context.Context, id int) (*domain.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.files[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneFile(f), nil
}

func (r *fileRepo) ListByUser(_ context.Context, userID int) ([]domain.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.File
	for _, f := range r.files {
		if f.UserID == userID {
			out = append(out, *cloneFile(f))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fileRepo) Update(_ context.Context, f *domain.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.files[f.ID]; !ok {
		return domain.ErrNotFound
	}
	r.files[f.ID] = cloneFile(f)
	return nil
}

func (r *fileRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.files[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.files, id)
	return nil
}
