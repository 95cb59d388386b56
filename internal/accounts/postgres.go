package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/madr-project/madr/internal/apperr"
	"github.com/madr-project/madr/internal/database"
	"github.com/madr-project/madr/internal/models"
)

// PostgresRepository implements Repository on a users table with a unique
// constraint on email.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, name, email, password, created_at FROM users WHERE email = $1`

	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, u *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, name, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, u.ID, u.Name, u.Email, u.Password).
		Scan(&u.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Update(ctx context.Context, u *models.User) (*models.User, error) {
	query := `
		UPDATE users SET name = $1, email = $2, password = $3
		WHERE id = $4
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, u.Name, u.Email, u.Password, u.ID).
		Scan(&u.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.ErrConflict
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
