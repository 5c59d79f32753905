package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/bookwookie/internal/domain"
)

type userRepo struct{ pool *pgxpool.Pool }

const userCols = `id, username, first_name, last_name, pseudonym, salt, hash`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Pseudonym, &u.Salt, &u.Hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	const q = `
INSERT INTO app_user (username, first_name, last_name, pseudonym, salt, hash)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	err := r.pool.QueryRow(ctx, q, u.Username, u.FirstName, u.LastName, u.Pseudonym, u.Salt, u.Hash).Scan(&u.ID)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id int) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM app_user WHERE id = $1`, id))
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	// el índice único va sobre lower(username); el lookup usa la misma forma
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM app_user WHERE lower(username) = lower($1)`, username))
}

func (r *userRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userCols+` FROM app_user ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Pseudonym, &u.Salt, &u.Hash); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *userRepo) Update(ctx context.Context, u *domain.User) error {
	const q = `
UPDATE app_user
SET username=$2, first_name=$3, last_name=$4, pseudonym=$5, salt=$6, hash=$7
WHERE id=$1`
	tag, err := r.pool.Exec(ctx, q, u.ID, u.Username, u.FirstName, u.LastName, u.Pseudonym, u.Salt, u.Hash)
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

func (r *userRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM app_user WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
