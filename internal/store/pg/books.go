package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/bookwookie/internal/domain"
)

type bookRepo struct{ pool *pgxpool.Pool }

const bookCols = `b.id, b.title, b.description, b.created_at, b.file_id, b.user_id`

func scanBook(row pgx.Row) (*domain.Book, error) {
	var b domain.Book
	if err := row.Scan(&b.ID, &b.Title, &b.Description, &b.CreatedAt, &b.FileID, &b.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *bookRepo) Create(ctx context.Context, b *domain.Book) error {
	const q = `
INSERT INTO book (title, description, file_id, user_id)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, b.Title, b.Description, b.FileID, b.UserID).Scan(&b.ID, &b.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *bookRepo) GetByID(ctx context.Context, id int) (*domain.Book, error) {
	return scanBook(r.pool.QueryRow(ctx, `SELECT `+bookCols+` FROM book b WHERE b.id = $1`, id))
}

// List arma el WHERE dinámico espejando las cláusulas del filtro de
// dominio: mismos campos, misma semántica (substring case-sensitive,
// fecha inclusiva, createdOn por día calendario UTC). El predicado en
// memoria es la referencia; esto es su traducción a SQL.
func (r *bookRepo) List(ctx context.Context, f *domain.BookFilter) ([]domain.Book, error) {
	q := `SELECT ` + bookCols + ` FROM book b LEFT JOIN app_user u ON u.id = b.user_id`

	where, args := buildBookWhere(f)
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY b.id"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.CreatedAt, &b.FileID, &b.UserID); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func buildBookWhere(f *domain.BookFilter) (where []string, args []any) {
	add := func(clause string, val any) {
		args = append(args, val)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if f != nil {
		if f.BookID != nil {
			add("b.id = $%d", *f.BookID)
		}
		if f.AuthorID != nil {
			add("b.user_id = $%d", *f.AuthorID)
		}
		if f.AuthorPseudonym != nil {
			add("u.pseudonym = $%d", *f.AuthorPseudonym)
		}
		if f.AuthorFirstName != nil {
			add("u.first_name = $%d", *f.AuthorFirstName)
		}
		if f.AuthorLastName != nil {
			add("u.last_name = $%d", *f.AuthorLastName)
		}
		if f.CreatedOn != nil {
			// mismo cast de ambos lados; $N::date a secas convertiría por
			// el TimeZone de la sesión
			add("(b.created_at AT TIME ZONE 'UTC')::date = ($%d AT TIME ZONE 'UTC')::date", f.CreatedOn.UTC())
		}
		if f.CreatedAfter != nil {
			add("b.created_at >= $%d", *f.CreatedAfter)
		}
		if f.CreatedBefore != nil {
			add("b.created_at <= $%d", *f.CreatedBefore)
		}
		if f.TitleEquals != nil {
			add("b.title = $%d", *f.TitleEquals)
		}
		if f.TitleContains != nil {
			// position() es case-sensitive, igual que strings.Contains
			add("position($%d in b.title) > 0", *f.TitleContains)
		}
		if f.DescriptionContains != nil {
			add("position($%d in b.description) > 0", *f.DescriptionContains)
		}
	}
	return where, args
}

func (r *bookRepo) Update(ctx context.Context, b *domain.Book) error {
	const q = `
UPDATE book
SET title=$2, description=$3, file_id=$4
WHERE id=$1`
	tag, err := r.pool.Exec(ctx, q, b.ID, b.Title, b.Description, b.FileID)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM book WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
