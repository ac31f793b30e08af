package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents an item in the store catalogue. Name is unique and
// price is in integer minor currency units (cents) to avoid
// floating-point error.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       int64     `json:"price" db:"price"`
	Stock       int       `json:"stock" db:"stock"`
	CategoryID  uuid.UUID `json:"categoryId" db:"category_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ProductRequest is the request payload for creating or updating a
// product. Nil fields are left unchanged on update.
type ProductRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Price       *int64     `json:"price,omitempty"`
	Stock       *int       `json:"stock,omitempty"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty"`
}
