package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/madr-project/madr/internal/apperr"
	"github.com/madr-project/madr/internal/database"
	"github.com/madr-project/madr/internal/models"
)

// PostgresAuthorRepository implements AuthorRepository on the authors table.
type PostgresAuthorRepository struct {
	db *sql.DB
}

func NewPostgresAuthorRepository(db *sql.DB) *PostgresAuthorRepository {
	return &PostgresAuthorRepository{db: db}
}

func (r *PostgresAuthorRepository) List(ctx context.Context, name string, limit, offset int) ([]models.Author, error) {
	query := `
		SELECT id, name, nationality, birth_date, created_at FROM authors
		WHERE ($1 = '' OR name LIKE '%' || $1 || '%')
		ORDER BY id
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, name, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	authors := []models.Author{}
	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Nationality, &a.BirthDate, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (r *PostgresAuthorRepository) Get(ctx context.Context, id int64) (*models.Author, error) {
	query := `SELECT id, name, nationality, birth_date, created_at FROM authors WHERE id = $1`

	a := &models.Author{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.Name, &a.Nationality, &a.BirthDate, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresAuthorRepository) Insert(ctx context.Context, a *models.Author) (*models.Author, error) {
	query := `
		INSERT INTO authors (name, nationality, birth_date)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, a.Name, a.Nationality, a.BirthDate).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresAuthorRepository) Update(ctx context.Context, a *models.Author) (*models.Author, error) {
	query := `
		UPDATE authors SET name = $1, nationality = $2, birth_date = $3
		WHERE id = $4
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, a.Name, a.Nationality, a.BirthDate, a.ID).
		Scan(&a.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.ErrConflict
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresAuthorRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// PostgresBookRepository implements BookRepository on the books and
// book_authorship tables.
type PostgresBookRepository struct {
	db *sql.DB
}

func NewPostgresBookRepository(db *sql.DB) *PostgresBookRepository {
	return &PostgresBookRepository{db: db}
}

func (r *PostgresBookRepository) List(ctx context.Context, name string, limit, offset int) ([]models.Book, error) {
	query := `
		SELECT id, isbn, name, year, created_at FROM books
		WHERE ($1 = '' OR name LIKE '%' || $1 || '%')
		ORDER BY id
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, name, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.ISBN, &b.Name, &b.Year, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range books {
		ids, err := r.authorIDs(ctx, r.db, books[i].ID)
		if err != nil {
			return nil, err
		}
		books[i].AuthorIDs = ids
	}
	return books, nil
}

func (r *PostgresBookRepository) Get(ctx context.Context, id int64) (*models.Book, error) {
	query := `SELECT id, isbn, name, year, created_at FROM books WHERE id = $1`

	b := &models.Book{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&b.ID, &b.ISBN, &b.Name, &b.Year, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if b.AuthorIDs, err = r.authorIDs(ctx, r.db, b.ID); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PostgresBookRepository) Insert(ctx context.Context, b *models.Book) (*models.Book, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO books (isbn, name, year)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	if err := tx.QueryRowContext(ctx, query, b.ISBN, b.Name, b.Year).Scan(&b.ID, &b.CreatedAt); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := r.linkAuthors(ctx, tx, b.ID, b.AuthorIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *PostgresBookRepository) Update(ctx context.Context, b *models.Book, replaceAuthors bool) (*models.Book, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		UPDATE books SET isbn = $1, name = $2, year = $3
		WHERE id = $4
		RETURNING created_at`

	if err := tx.QueryRowContext(ctx, query, b.ISBN, b.Name, b.Year, b.ID).Scan(&b.CreatedAt); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.ErrConflict
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if replaceAuthors {
		if _, err := tx.ExecContext(ctx, `DELETE FROM book_authorship WHERE book_id = $1`, b.ID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := r.linkAuthors(ctx, tx, b.ID, b.AuthorIDs); err != nil {
			return nil, err
		}
	} else {
		if b.AuthorIDs, err = r.authorIDs(ctx, tx, b.ID); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *PostgresBookRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// querier is the subset of *sql.DB / *sql.Tx the helpers need.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *PostgresBookRepository) linkAuthors(ctx context.Context, q querier, bookID int64, authorIDs []int64) error {
	for _, authorID := range authorIDs {
		_, err := q.ExecContext(ctx,
			`INSERT INTO book_authorship (book_id, author_id) VALUES ($1, $2)`,
			bookID, authorID)
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return apperr.ErrNotFound
			}
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresBookRepository) authorIDs(ctx context.Context, q querier, bookID int64) ([]int64, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT author_id FROM book_authorship WHERE book_id = $1 ORDER BY author_id`, bookID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
