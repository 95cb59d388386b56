// Package apperr defines the sentinel errors shared across services and
// handlers. Callers should use errors.Is to match these values; handlers
// translate them to HTTP statuses at the boundary.
package apperr

import "errors"

var (
	// ErrUnauthenticated covers every token failure visible to clients:
	// missing, malformed, expired, or the subject no longer resolves to a
	// user. Deliberately one kind so responses do not leak which check failed.
	ErrUnauthenticated = errors.New("could not validate credentials")

	// ErrInvalidCredentials is the single login failure for both unknown
	// email and wrong password.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrForbidden means the caller is authenticated but does not own the
	// target resource.
	ErrForbidden = errors.New("not enough permissions")

	// ErrConflict is a uniqueness violation on create/update.
	ErrConflict = errors.New("already exists")

	// ErrNotFound is a missing target resource.
	ErrNotFound = errors.New("not found")

	// ErrInternal is an unexpected store inconsistency (e.g. a delete that
	// removed an unexpected number of rows).
	ErrInternal = errors.New("internal error")
)
