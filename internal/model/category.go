package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups related products. Name is unique.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// CategoryRequest is the request payload for creating or updating a
// category.
type CategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
