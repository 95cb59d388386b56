package models

import "time"

// Author is a catalog author. Name is unique across the catalog.
type Author struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Nationality string    `json:"nationality"`
	BirthDate   time.Time `json:"birthDate"`
	CreatedAt   time.Time `json:"createdAt"`
}
