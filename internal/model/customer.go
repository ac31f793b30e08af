package model

import (
	"time"

	"github.com/google/uuid"
)

// Address is a customer's shipping address, stored as a single document
// column. A customer without one cannot check out.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Customer represents a registered customer. Email is unique.
type Customer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Address   *Address  `json:"address,omitempty" db:"address"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CustomerRequest is the request payload for creating or updating a
// customer. Nil fields are left unchanged on update.
type CustomerRequest struct {
	FirstName *string  `json:"firstName,omitempty"`
	LastName  *string  `json:"lastName,omitempty"`
	Email     *string  `json:"email,omitempty"`
	Address   *Address `json:"address,omitempty"`
}
