package models

import "time"

// Book is a catalog entry linked to zero or more authors through the
// book_authorship join table. Name is unique across the catalog; ISBN is
// optional.
type Book struct {
	ID        int64     `json:"id"`
	ISBN      *string   `json:"isbn,omitempty"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	AuthorIDs []int64   `json:"authorIds"`
	CreatedAt time.Time `json:"createdAt"`
}
