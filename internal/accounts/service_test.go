package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/madr-project/madr/internal/apperr"
	"github.com/madr-project/madr/internal/models"
	"github.com/madr-project/madr/internal/tokens"
)

func newTestService() *Service {
	codec := tokens.NewCodec("service-test-secret-32-bytes-xxxxxx", 30*time.Minute)
	return NewService(NewMemoryRepository(), codec)
}

func TestRegisterLoginResolveRoundTrip(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada Lovelace", "ada@x.com", "password1")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, u.ID)
	require.Equal(t, "ada lovelace", u.Name)
	require.NotEqual(t, "password1", u.Password)

	tok, err := svc.Login(ctx, "ada@x.com", "password1")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	resolved, err := svc.Resolve(ctx, tok)
	require.NoError(t, err)
	require.Equal(t, u.ID, resolved.ID)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@x.com", "password1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Ada", "ada@x.com", "password2")
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@x.com", "password1")
	require.NoError(t, err)

	_, errUnknown := svc.Login(ctx, "nobody@x.com", "password1")
	_, errWrongPw := svc.Login(ctx, "ada@x.com", "wrongpassword")

	require.ErrorIs(t, errUnknown, apperr.ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPw, apperr.ErrInvalidCredentials)
	require.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func TestResolveExpiredToken(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@x.com", "password1")
	require.NoError(t, err)

	issuedAt := time.Now()
	svc.WithClock(func() time.Time { return issuedAt })
	tok, err := svc.Login(ctx, "ada@x.com", "password1")
	require.NoError(t, err)

	// one second past expiry
	svc.WithClock(func() time.Time { return issuedAt.Add(30*time.Minute + time.Second) })
	_, err = svc.Resolve(ctx, tok)
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)

	_, err = svc.Refresh(ctx, tok)
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestResolveGarbageToken(t *testing.T) {
	svc := newTestService()
	_, err := svc.Resolve(context.Background(), "not-a-token")
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestResolveTokenOfDeletedUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada", "ada@x.com", "password1")
	require.NoError(t, err)
	tok, err := svc.Login(ctx, "ada@x.com", "password1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u, u.ID))

	// token is not expired, but the subject no longer resolves
	_, err = svc.Resolve(ctx, tok)
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestRefreshIssuesNewExpiry(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@x.com", "password1")
	require.NoError(t, err)

	t0 := time.Now()
	svc.WithClock(func() time.Time { return t0 })
	tok, err := svc.Login(ctx, "ada@x.com", "password1")
	require.NoError(t, err)

	svc.WithClock(func() time.Time { return t0.Add(20 * time.Minute) })
	refreshed, err := svc.Refresh(ctx, tok)
	require.NoError(t, err)
	require.NotEqual(t, tok, refreshed)

	// original expires at t0+30m, the refreshed token survives past that
	svc.WithClock(func() time.Time { return t0.Add(40 * time.Minute) })
	_, err = svc.Resolve(ctx, tok)
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)
	u, err := svc.Resolve(ctx, refreshed)
	require.NoError(t, err)
	require.Equal(t, "ada@x.com", u.Email)
}

func TestUpdateOwnAccount(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada", "ada@x.com", "password1")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, u, u.ID, "Ada B", "ada.b@x.com", "newpassword")
	require.NoError(t, err)
	require.Equal(t, "ada b", updated.Name)
	require.Equal(t, "ada.b@x.com", updated.Email)

	// new password works, old one does not
	_, err = svc.Login(ctx, "ada.b@x.com", "newpassword")
	require.NoError(t, err)
	_, err = svc.Login(ctx, "ada.b@x.com", "password1")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestUpdateKeepsPasswordWhenOmitted(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada", "ada@x.com", "password1")
	require.NoError(t, err)

	_, err = svc.Update(ctx, u, u.ID, "Ada", "ada@x.com", "")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ada@x.com", "password1")
	require.NoError(t, err)
}

func TestUpdateOtherAccountForbidden(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, err := svc.Register(ctx, "Ada", "ada@x.com", "password1")
	require.NoError(t, err)
	b, err := svc.Register(ctx, "Bob", "bob@x.com", "password2")
	require.NoError(t, err)

	_, err = svc.Update(ctx, a, b.ID, "Mallory", "mallory@x.com", "password3")
	require.ErrorIs(t, err, apperr.ErrForbidden)

	// B unchanged
	got, err := svc.repo.GetByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	require.Equal(t, "bob", got.Name)
}

func TestUpdateEmailConflict(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, err := svc.Register(ctx, "Ada", "ada@x.com", "password1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Bob", "bob@x.com", "password2")
	require.NoError(t, err)

	_, err = svc.Update(ctx, a, a.ID, "Ada", "bob@x.com", "")
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func TestDeleteOtherAccountForbidden(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, err := svc.Register(ctx, "Ada", "ada@x.com", "password1")
	require.NoError(t, err)
	b, err := svc.Register(ctx, "Bob", "bob@x.com", "password2")
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, a, b.ID), apperr.ErrForbidden)
}

// countingRepo wraps a fixed Delete result to exercise the row-count check.
type countingRepo struct {
	*MemoryRepository
	deleted int64
}

func (r *countingRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.deleted, nil
}

func TestDeleteRowCountMismatch(t *testing.T) {
	for _, n := range []int64{0, 2} {
		repo := &countingRepo{MemoryRepository: NewMemoryRepository(), deleted: n}
		codec := tokens.NewCodec("service-test-secret-32-bytes-xxxxxx", time.Minute)
		svc := NewService(repo, codec)

		u := &models.User{ID: uuid.New()}
		require.ErrorIs(t, svc.Delete(context.Background(), u, u.ID), apperr.ErrInternal)
	}
}
