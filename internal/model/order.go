package model

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an order. Orders move strictly
// forward: cart -> processing -> shipped -> delivered.
type Status string

const (
	StatusCart       Status = "cart"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
)

// statusNext maps each status to the only status it may advance to.
// Delivered is terminal and has no entry.
var statusNext = map[Status]Status{
	StatusCart:       StatusProcessing,
	StatusProcessing: StatusShipped,
	StatusShipped:    StatusDelivered,
}

// Valid reports whether s is a known order status.
func (s Status) Valid() bool {
	switch s {
	case StatusCart, StatusProcessing, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// ValidateStatusTransition checks that an order may move from one status
// to the next. Same-state, skip-ahead and backward transitions all fail.
func ValidateStatusTransition(from, to Status) error {
	if next, ok := statusNext[from]; ok && next == to {
		return nil
	}
	return NewInvalidTransitionError(from, to)
}

// Payment is the free-form payment blob attached to an order before
// checkout. The store does not interpret its contents.
type Payment map[string]any

// Order represents a customer order. An order in 'cart' status is the
// customer's open cart; each customer has at most one.
type Order struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CustomerID uuid.UUID `json:"customerId" db:"customer_id"`
	Status     Status    `json:"status" db:"status"`
	Payment    Payment   `json:"payment,omitempty" db:"payment"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// OrderItem represents a line item in an order. The (order, product)
// pair is unique; writing the same product again overwrites the quantity.
type OrderItem struct {
	OrderID     uuid.UUID `json:"-" db:"order_id"`
	ProductID   uuid.UUID `json:"productId" db:"product_id"`
	ProductName string    `json:"productName" db:"product_name"`
	UnitPrice   int64     `json:"unitPrice" db:"unit_price"`
	Quantity    int       `json:"quantity" db:"quantity"`
}

// OrderDetail is an order together with its line items and the derived
// total. The total is recomputed from current product prices at read
// time, never stored.
type OrderDetail struct {
	Order
	Items []OrderItem `json:"items"`
	Total int64       `json:"total"`
}

// ComputeTotal sums quantity times current unit price over all items.
func (d *OrderDetail) ComputeTotal() {
	var total int64
	for _, item := range d.Items {
		total += int64(item.Quantity) * item.UnitPrice
	}
	d.Total = total
}

// CartItemRequest is the request payload for adding or updating a cart
// line item. Quantity uses set semantics: the value replaces whatever
// quantity the cart already holds, and zero removes the line.
type CartItemRequest struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// OrderUpdateRequest is the request payload for PATCH /orders/{id}.
type OrderUpdateRequest struct {
	Status  Status  `json:"status"`
	Payment Payment `json:"payment,omitempty"`
}
