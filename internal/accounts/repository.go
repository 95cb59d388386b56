package accounts

import (
	"context"

	"github.com/google/uuid"

	"github.com/madr-project/madr/internal/models"
)

// Repository defines persistence operations for accounts. Implementations
// run each call in its own implicit transaction: a returned error means
// nothing was written.
type Repository interface {
	// GetByEmail returns the user with the given email or apperr.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Insert stores a new user. A duplicate email yields apperr.ErrConflict.
	Insert(ctx context.Context, u *models.User) (*models.User, error)

	// Update replaces name, email and password hash of an existing user.
	// A duplicate email yields apperr.ErrConflict; a missing row
	// apperr.ErrNotFound.
	Update(ctx context.Context, u *models.User) (*models.User, error)

	// Delete removes the user and reports how many rows were affected.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
