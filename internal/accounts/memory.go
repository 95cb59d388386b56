package accounts

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/madr-project/madr/internal/apperr"
	"github.com/madr-project/madr/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests. It
// enforces the same email uniqueness the Postgres schema does.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[uuid.UUID]models.User)}
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *MemoryRepository) Insert(ctx context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, apperr.ErrConflict
		}
	}
	r.users[u.ID] = *u
	cp := *u
	return &cp, nil
}

func (r *MemoryRepository) Update(ctx context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[u.ID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	for id, other := range r.users {
		if id != u.ID && other.Email == u.Email {
			return nil, apperr.ErrConflict
		}
	}
	u.CreatedAt = existing.CreatedAt
	r.users[u.ID] = *u
	cp := *u
	return &cp, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}
