package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CustomerRepository defines the interface for customer data access operations.
type CustomerRepository interface {
	// Create inserts a new customer.
	Create(ctx context.Context, customer *model.Customer) error

	// GetByID retrieves a single customer by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)

	// GetByIDTx retrieves a customer within the provided transaction.
	GetByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Customer, error)

	// Update persists the full customer row.
	Update(ctx context.Context, customer *model.Customer) error

	// Delete removes a customer. It reports whether a row was deleted.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// Create inserts a new category.
	Create(ctx context.Context, category *model.Category) error

	// GetAll retrieves all categories.
	GetAll(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a single category by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)

	// GetByName retrieves a single category by its unique name.
	GetByName(ctx context.Context, name string) (*model.Category, error)

	// Update persists the full category row.
	Update(ctx context.Context, category *model.Category) error
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// GetAll retrieves products with pagination, optionally filtered by
	// category.
	GetAll(ctx context.Context, limit, offset int, categoryID *uuid.UUID) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByNameTx retrieves a product by its unique name within the
	// provided transaction.
	GetByNameTx(ctx context.Context, tx pgx.Tx, name string) (*model.Product, error)

	// GetByIDsForUpdate retrieves and row-locks products by their IDs
	// within the provided transaction. Rows are locked in ID order so
	// concurrent checkouts acquire locks in the same sequence.
	GetByIDsForUpdate(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) ([]model.Product, error)

	// DecrementStock subtracts quantity from a product's stock within the
	// provided transaction.
	DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error

	// Update persists the full product row.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product. It reports whether a row was deleted.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// UpsertByName inserts a product or, when one with the same name
	// already exists, refreshes its description, price, stock and
	// category. Used by the catalogue importer.
	UpsertByName(ctx context.Context, product *model.Product) error
}

// OrderRepository defines the interface for order data access operations.
// Every mutating step of a business transaction takes the enclosing
// pgx.Tx so multi-step operations commit or roll back as one unit.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateCart inserts a new order in cart status within the provided
	// transaction.
	CreateCart(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetCartForUpdate retrieves and row-locks the customer's open cart
	// within the provided transaction, or nil when the customer has none.
	GetCartForUpdate(ctx context.Context, tx pgx.Tx, customerID uuid.UUID) (*model.Order, error)

	// GetForUpdate retrieves and row-locks an order by its ID within the
	// provided transaction.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error)

	// GetItemsTx retrieves an order's line items within the provided
	// transaction.
	GetItemsTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]model.OrderItem, error)

	// UpsertItem writes a line item quantity with set semantics: an
	// existing (order, product) row is overwritten, not incremented.
	UpsertItem(ctx context.Context, tx pgx.Tx, orderID, productID uuid.UUID, quantity int) error

	// DeleteItem removes a line item. Removing an absent item is a no-op.
	DeleteItem(ctx context.Context, tx pgx.Tx, orderID, productID uuid.UUID) error

	// UpdateStatus sets an order's status within the provided transaction
	// and, when payment is non-nil, replaces the stored payment blob.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.Status, payment model.Payment) error

	// GetDetail retrieves an order with its line items and derived total.
	GetDetail(ctx context.Context, id uuid.UUID) (*model.OrderDetail, error)

	// ListByCustomer retrieves all of a customer's orders with their line
	// items and derived totals, newest first.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.OrderDetail, error)
}
