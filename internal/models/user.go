package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Password holds the Argon2id hash, never the
// plaintext, and is excluded from every response view by construction (see
// UserView).
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserView is the public shape returned by account endpoints. It is built by
// hand rather than by serializing User so the hash cannot leak through a
// forgotten tag.
type UserView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// View returns the public projection of u.
func (u *User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email}
}
