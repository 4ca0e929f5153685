package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products. Slug uniqueness is not enforced.
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CategoryRequest is the admin payload for creating or updating a category.
type CategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}
