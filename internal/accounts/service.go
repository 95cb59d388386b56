// Package accounts implements the account lifecycle: registration, login,
// token refresh, identity resolution, and self-service update/delete.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/madr-project/madr/internal/apperr"
	"github.com/madr-project/madr/internal/models"
	"github.com/madr-project/madr/internal/password"
	"github.com/madr-project/madr/internal/sanitize"
	"github.com/madr-project/madr/internal/tokens"
)

// Service composes the credential hasher, token codec and repository into
// the account operations exposed to handlers.
type Service struct {
	repo  Repository
	codec *tokens.Codec
	now   func() time.Time
}

func NewService(r Repository, c *tokens.Codec) *Service {
	return &Service{repo: r, codec: c, now: time.Now}
}

// WithClock overrides the service clock. Test helper.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Register creates a new account. The display name is sanitized and the
// password stored only as a hash. A duplicate email yields
// apperr.ErrConflict.
func (s *Service) Register(ctx context.Context, name, email, plaintext string) (*models.User, error) {
	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	u := &models.User{
		ID:       uuid.New(),
		Name:     sanitize.Name(name),
		Email:    email,
		Password: hash,
	}
	return s.repo.Insert(ctx, u)
}

// Login verifies credentials and returns a fresh bearer token. Unknown email
// and wrong password collapse into the same apperr.ErrInvalidCredentials so
// responses cannot be used to enumerate accounts.
func (s *Service) Login(ctx context.Context, email, plaintext string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", apperr.ErrInvalidCredentials
		}
		return "", err
	}
	if !password.Verify(plaintext, u.Password) {
		return "", apperr.ErrInvalidCredentials
	}
	return s.codec.Issue(u.Email, s.now())
}

// Resolve turns a bearer token into the account it identifies. Malformed
// and expired tokens, and tokens whose subject no longer exists (the user
// was deleted after issuance), all collapse into apperr.ErrUnauthenticated.
// No caching: every call re-verifies the signature and re-queries the store,
// which is what reconciles stateless tokens with account deletion.
func (s *Service) Resolve(ctx context.Context, raw string) (*models.User, error) {
	subject, err := s.codec.Parse(raw, s.now())
	if err != nil {
		return nil, apperr.ErrUnauthenticated
	}
	u, err := s.repo.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUnauthenticated
		}
		return nil, err
	}
	return u, nil
}

// Refresh exchanges a still-valid token for a brand-new one whose expiry is
// computed from the current clock. An expired token is rejected; refresh is
// not a grace extension.
func (s *Service) Refresh(ctx context.Context, raw string) (string, error) {
	u, err := s.Resolve(ctx, raw)
	if err != nil {
		return "", err
	}
	return s.codec.Issue(u.Email, s.now())
}

// CheckOwner allows mutation only when the authenticated account is the
// target account.
func (s *Service) CheckOwner(current *models.User, target uuid.UUID) error {
	if current.ID != target {
		return apperr.ErrForbidden
	}
	return nil
}

// Update replaces the account's name, email and, when plaintext is
// non-empty, its password hash. Only the owner may update the account.
func (s *Service) Update(ctx context.Context, current *models.User, target uuid.UUID, name, email, plaintext string) (*models.User, error) {
	if err := s.CheckOwner(current, target); err != nil {
		return nil, err
	}
	hash := current.Password
	if plaintext != "" {
		var err error
		if hash, err = password.Hash(plaintext); err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
	}
	u := &models.User{
		ID:       target,
		Name:     sanitize.Name(name),
		Email:    email,
		Password: hash,
	}
	return s.repo.Update(ctx, u)
}

// Delete removes the account. Exactly one row must be affected; any other
// count reports apperr.ErrInternal and the repository guarantees no partial
// commit.
func (s *Service) Delete(ctx context.Context, current *models.User, target uuid.UUID) error {
	if err := s.CheckOwner(current, target); err != nil {
		return err
	}
	n, err := s.repo.Delete(ctx, target)
	if err != nil {
		return err
	}
	if n != 1 {
		return apperr.ErrInternal
	}
	return nil
}
