package catalog

import (
	"context"

	"github.com/madr-project/madr/internal/models"
)

// AuthorRepository defines persistence operations for authors. Each call
// runs in its own implicit transaction.
type AuthorRepository interface {
	// List returns up to limit authors starting at offset. A non-empty name
	// restricts results to names containing it.
	List(ctx context.Context, name string, limit, offset int) ([]models.Author, error)

	// Get returns the author or apperr.ErrNotFound.
	Get(ctx context.Context, id int64) (*models.Author, error)

	// Insert stores a new author. A duplicate name yields apperr.ErrConflict.
	Insert(ctx context.Context, a *models.Author) (*models.Author, error)

	// Update replaces the author row. apperr.ErrNotFound / apperr.ErrConflict.
	Update(ctx context.Context, a *models.Author) (*models.Author, error)

	// Delete removes the author and reports the affected row count.
	Delete(ctx context.Context, id int64) (int64, error)
}

// BookRepository defines persistence operations for books and their author
// links. Insert and Update maintain the join rows in the same transaction as
// the book row: either everything commits or nothing does.
type BookRepository interface {
	List(ctx context.Context, name string, limit, offset int) ([]models.Book, error)
	Get(ctx context.Context, id int64) (*models.Book, error)

	// Insert stores a new book and its authorship links. An unknown author
	// id yields apperr.ErrNotFound; a duplicate name apperr.ErrConflict.
	Insert(ctx context.Context, b *models.Book) (*models.Book, error)

	// Update replaces the book row and, when replaceAuthors is set, its
	// authorship links.
	Update(ctx context.Context, b *models.Book, replaceAuthors bool) (*models.Book, error)

	Delete(ctx context.Context, id int64) (int64, error)
}
