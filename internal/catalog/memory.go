package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/madr-project/madr/internal/apperr"
	"github.com/madr-project/madr/internal/models"
)

// MemoryAuthorRepository is an in-memory AuthorRepository for unit tests,
// with the same uniqueness semantics as the Postgres schema.
type MemoryAuthorRepository struct {
	mu      sync.RWMutex
	nextID  int64
	authors map[int64]models.Author
}

func NewMemoryAuthorRepository() *MemoryAuthorRepository {
	return &MemoryAuthorRepository{nextID: 1, authors: make(map[int64]models.Author)}
}

func (r *MemoryAuthorRepository) List(ctx context.Context, name string, limit, offset int) ([]models.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := []models.Author{}
	for _, a := range r.authors {
		if name == "" || strings.Contains(a.Name, name) {
			all = append(all, a)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, limit, offset), nil
}

func (r *MemoryAuthorRepository) Get(ctx context.Context, id int64) (*models.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.authors[id]; ok {
		cp := a
		return &cp, nil
	}
	return nil, apperr.ErrNotFound
}

func (r *MemoryAuthorRepository) Insert(ctx context.Context, a *models.Author) (*models.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.authors {
		if existing.Name == a.Name {
			return nil, apperr.ErrConflict
		}
	}
	a.ID = r.nextID
	r.nextID++
	a.CreatedAt = time.Now().UTC()
	r.authors[a.ID] = *a
	cp := *a
	return &cp, nil
}

func (r *MemoryAuthorRepository) Update(ctx context.Context, a *models.Author) (*models.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.authors[a.ID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	for id, other := range r.authors {
		if id != a.ID && other.Name == a.Name {
			return nil, apperr.ErrConflict
		}
	}
	a.CreatedAt = existing.CreatedAt
	r.authors[a.ID] = *a
	cp := *a
	return &cp, nil
}

func (r *MemoryAuthorRepository) Delete(ctx context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.authors[id]; !ok {
		return 0, nil
	}
	delete(r.authors, id)
	return 1, nil
}

// MemoryBookRepository is an in-memory BookRepository for unit tests. Author
// links are validated against a sibling MemoryAuthorRepository.
type MemoryBookRepository struct {
	mu      sync.RWMutex
	nextID  int64
	books   map[int64]models.Book
	authors *MemoryAuthorRepository
}

func NewMemoryBookRepository(authors *MemoryAuthorRepository) *MemoryBookRepository {
	return &MemoryBookRepository{nextID: 1, books: make(map[int64]models.Book), authors: authors}
}

func (r *MemoryBookRepository) List(ctx context.Context, name string, limit, offset int) ([]models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := []models.Book{}
	for _, b := range r.books {
		if name == "" || strings.Contains(b.Name, name) {
			all = append(all, b)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, limit, offset), nil
}

func (r *MemoryBookRepository) Get(ctx context.Context, id int64) (*models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if b, ok := r.books[id]; ok {
		cp := b
		return &cp, nil
	}
	return nil, apperr.ErrNotFound
}

func (r *MemoryBookRepository) Insert(ctx context.Context, b *models.Book) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.books {
		if existing.Name == b.Name {
			return nil, apperr.ErrConflict
		}
	}
	if err := r.checkAuthors(ctx, b.AuthorIDs); err != nil {
		return nil, err
	}
	b.ID = r.nextID
	r.nextID++
	b.CreatedAt = time.Now().UTC()
	r.books[b.ID] = *b
	cp := *b
	return &cp, nil
}

func (r *MemoryBookRepository) Update(ctx context.Context, b *models.Book, replaceAuthors bool) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.books[b.ID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	for id, other := range r.books {
		if id != b.ID && other.Name == b.Name {
			return nil, apperr.ErrConflict
		}
	}
	if replaceAuthors {
		if err := r.checkAuthors(ctx, b.AuthorIDs); err != nil {
			return nil, err
		}
	} else {
		b.AuthorIDs = existing.AuthorIDs
	}
	b.CreatedAt = existing.CreatedAt
	r.books[b.ID] = *b
	cp := *b
	return &cp, nil
}

func (r *MemoryBookRepository) Delete(ctx context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return 0, nil
	}
	delete(r.books, id)
	return 1, nil
}

func (r *MemoryBookRepository) checkAuthors(ctx context.Context, ids []int64) error {
	if r.authors == nil {
		return nil
	}
	for _, id := range ids {
		if _, err := r.authors.Get(ctx, id); err != nil {
			return apperr.ErrNotFound
		}
	}
	return nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
