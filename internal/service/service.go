package service

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// CustomerService defines operations for customer management.
type CustomerService interface {
	// Create registers a new customer.
	Create(ctx context.Context, req *model.CustomerRequest) (*model.Customer, error)

	// GetByID retrieves a single customer by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)

	// Update applies the non-nil fields of the request to a customer.
	Update(ctx context.Context, id uuid.UUID, req *model.CustomerRequest) (*model.Customer, error)

	// Delete removes a customer.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListOrders retrieves all of a customer's orders, newest first.
	ListOrders(ctx context.Context, id uuid.UUID) ([]model.OrderDetail, error)
}

// CategoryService defines operations for category management.
type CategoryService interface {
	// Create adds a new category.
	Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error)

	// GetAll retrieves all categories.
	GetAll(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a single category by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)

	// Update applies the non-nil fields of the request to a category.
	Update(ctx context.Context, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error)
}

// ProductService defines operations for product management.
type ProductService interface {
	// Create adds a new product to the catalogue.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// GetAll retrieves products with pagination, optionally filtered by
	// category.
	GetAll(ctx context.Context, limit, offset int, categoryID *uuid.UUID) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Update applies the non-nil fields of the request to a product.
	Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product from the catalogue.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderService defines operations for the order lifecycle: the cart,
// checkout and status transitions.
type OrderService interface {
	// GetOrCreateCart returns the customer's open cart, creating an empty
	// one if none exists.
	GetOrCreateCart(ctx context.Context, customerID uuid.UUID) (*model.OrderDetail, error)

	// UpsertCartItem sets the quantity of a product in the customer's
	// cart, creating the cart if needed. Quantity uses set semantics and
	// zero removes the line item.
	UpsertCartItem(ctx context.Context, customerID uuid.UUID, productName string, quantity int) (*model.OrderDetail, error)

	// GetByID retrieves an order with its items and derived total.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderDetail, error)

	// UpdateStatus advances an order's status. A transition to
	// 'processing' runs the full checkout; every other target is a plain
	// validated status update.
	UpdateStatus(ctx context.Context, id uuid.UUID, req *model.OrderUpdateRequest) (*model.OrderDetail, error)

	// Checkout validates and finalises a cart: stock is re-checked and
	// decremented, payment merged and the order moved to 'processing',
	// all in one transaction.
	Checkout(ctx context.Context, id uuid.UUID, status model.Status, payment model.Payment) (*model.OrderDetail, error)
}
