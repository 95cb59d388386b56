// Package catalog implements the bibliographic catalog: authors, books, and
// the authorship links between them.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/madr-project/madr/internal/apperr"
	"github.com/madr-project/madr/internal/models"
	"github.com/madr-project/madr/internal/sanitize"
)

// ErrInvalidISBN rejects ISBNs that fail checksum validation.
var ErrInvalidISBN = errors.New("invalid ISBN")

// DefaultPageSize bounds listings when the client does not pass a limit.
const DefaultPageSize = 20

// AuthorUpdate carries the fields of a partial author update; nil means
// "leave unchanged".
type AuthorUpdate struct {
	Name        *string
	Nationality *string
	BirthDate   *time.Time
}

// BookUpdate carries the fields of a partial book update. A non-nil
// AuthorIDs replaces the authorship links wholesale.
type BookUpdate struct {
	ISBN      *string
	Name      *string
	Year      *int
	AuthorIDs []int64
}

// Service exposes catalog operations to handlers.
type Service struct {
	authors AuthorRepository
	books   BookRepository
}

func NewService(authors AuthorRepository, books BookRepository) *Service {
	return &Service{authors: authors, books: books}
}

func (s *Service) ListAuthors(ctx context.Context, name string, limit, offset int) ([]models.Author, error) {
	return s.authors.List(ctx, name, normalizeLimit(limit), max(offset, 0))
}

func (s *Service) GetAuthor(ctx context.Context, id int64) (*models.Author, error) {
	return s.authors.Get(ctx, id)
}

func (s *Service) CreateAuthor(ctx context.Context, name, nationality string, birthDate time.Time) (*models.Author, error) {
	a := &models.Author{Name: sanitize.Name(name), Nationality: nationality, BirthDate: birthDate}
	return s.authors.Insert(ctx, a)
}

func (s *Service) UpdateAuthor(ctx context.Context, id int64, upd AuthorUpdate) (*models.Author, error) {
	a, err := s.authors.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		a.Name = sanitize.Name(*upd.Name)
	}
	if upd.Nationality != nil {
		a.Nationality = *upd.Nationality
	}
	if upd.BirthDate != nil {
		a.BirthDate = *upd.BirthDate
	}
	return s.authors.Update(ctx, a)
}

func (s *Service) DeleteAuthor(ctx context.Context, id int64) error {
	return deleteOne(ctx, id, s.authors.Delete)
}

func (s *Service) ListBooks(ctx context.Context, name string, limit, offset int) ([]models.Book, error) {
	return s.books.List(ctx, name, normalizeLimit(limit), max(offset, 0))
}

func (s *Service) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	return s.books.Get(ctx, id)
}

func (s *Service) CreateBook(ctx context.Context, isbn *string, name string, year int, authorIDs []int64) (*models.Book, error) {
	if isbn != nil && !ValidISBN(*isbn) {
		return nil, ErrInvalidISBN
	}
	if authorIDs == nil {
		authorIDs = []int64{}
	}
	b := &models.Book{ISBN: isbn, Name: sanitize.Name(name), Year: year, AuthorIDs: authorIDs}
	return s.books.Insert(ctx, b)
}

func (s *Service) UpdateBook(ctx context.Context, id int64, upd BookUpdate) (*models.Book, error) {
	if upd.ISBN != nil && !ValidISBN(*upd.ISBN) {
		return nil, ErrInvalidISBN
	}
	b, err := s.books.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.ISBN != nil {
		b.ISBN = upd.ISBN
	}
	if upd.Name != nil {
		b.Name = sanitize.Name(*upd.Name)
	}
	if upd.Year != nil {
		b.Year = *upd.Year
	}
	replaceAuthors := upd.AuthorIDs != nil
	if replaceAuthors {
		b.AuthorIDs = upd.AuthorIDs
	}
	return s.books.Update(ctx, b, replaceAuthors)
}

func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	return deleteOne(ctx, id, s.books.Delete)
}

// deleteOne enforces the row-count contract shared by catalog deletes: one
// row is success, zero rows is a missing resource, anything else is a store
// inconsistency.
func deleteOne(ctx context.Context, id int64, del func(context.Context, int64) (int64, error)) error {
	n, err := del(ctx, id)
	if err != nil {
		return err
	}
	switch n {
	case 1:
		return nil
	case 0:
		return apperr.ErrNotFound
	default:
		return apperr.ErrInternal
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	return limit
}
