package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/bookwookie/internal/domain"
)

type fileRepo struct{ pool *pgxpool.Pool }

func (r *fileRepo) Create(ctx context.Context, f *domain.File) error {
	const q = `
INSERT INTO app_file (purpose, path, file_name, user_id)
VALUES ($1, $2, $3, $4)
RETURNING id, uploaded`
	return r.pool.QueryRow(ctx, q, f.Purpose, f.Path, f.FileName, f.UserID).Scan(&f.ID, &f.Uploaded)
}

func (r *fileRepo) GetByID(ctx context.Context, id int) (*domain.File, error) {
	const q = `SELECT id, purpose, path, file_name, uploaded, user_id FROM app_file WHERE id = $1`
	var f domain.File
	if err := r.pool.QueryRow(ctx, q, id).Scan(&f.ID, &f.Purpose, &f.Path, &f.FileName, &f.Uploaded, &f.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) ListByUser(ctx context.Context, userID int) ([]domain.File, error) {
	const q = `SELECT id, purpose, path, file_name, uploaded, user_id FROM app_file WHERE user_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.File
	for rows.Next() {
		var f domain.File
		if err := rows.Scan(&f.ID, &f.Purpose, &f.Path, &f.FileName, &f.Uploaded, &f.UserID); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *fileRepo) Update(ctx context.Context, f *domain.File) error {
	const q = `
UPDATE app_file
SET purpose=$2, path=$3, file_name=$4
WHERE id=$1`
	tag, err := r.pool.Exec(ctx, q, f.ID, f.Purpose, f.Path, f.FileName)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *fileRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM app_file WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
