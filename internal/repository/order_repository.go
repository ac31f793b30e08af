package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateCart inserts a new order in cart status within the provided
// transaction.
func (r *orderRepository) CreateCart(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, status, payment, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.CustomerID,
		order.Status,
		order.Payment,
		order.CreatedAt,
	)
	if err != nil {
		if translated := translateConstraintErr(err); translated != err {
			return translated
		}
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Str("customer_id", order.CustomerID.String()).
			Msg("failed to create cart")
		return fmt.Errorf("failed to create cart: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("customer_id", order.CustomerID.String()).
		Msg("cart created")

	return nil
}

const orderColumns = `id, customer_id, status, payment, created_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.Status, &o.Payment, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetCartForUpdate retrieves and row-locks the customer's open cart, or
// nil when the customer has none. The lock serialises concurrent cart
// writes for the same customer so the one-cart invariant holds.
func (r *orderRepository) GetCartForUpdate(ctx context.Context, tx pgx.Tx, customerID uuid.UUID) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1 AND status = $2
		FOR UPDATE
	`

	order, err := scanOrder(tx.QueryRow(ctx, query, customerID, model.StatusCart))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	return order, nil
}

// GetForUpdate retrieves and row-locks an order by its ID within the
// provided transaction. The lock guards against a concurrent
// double-checkout of the same order.
func (r *orderRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`

	order, err := scanOrder(tx.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order for update")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

const itemColumns = `oi.order_id, oi.product_id, p.name, p.price, oi.quantity`

// GetItemsTx retrieves an order's line items within the provided
// transaction.
func (r *orderRepository) GetItemsTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY p.name
	`

	rows, err := tx.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}

	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]model.OrderItem, error) {
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.OrderID, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// UpsertItem writes a line item quantity with set semantics: an existing
// (order, product) row is overwritten, not incremented.
func (r *orderRepository) UpsertItem(ctx context.Context, tx pgx.Tx, orderID, productID uuid.UUID, quantity int) error {
	query := `
		INSERT INTO order_items (order_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (order_id, product_id) DO UPDATE
		SET quantity = EXCLUDED.quantity
	`

	_, err := tx.Exec(ctx, query, orderID, productID, quantity)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID.String()).
			Str("product_id", productID.String()).
			Int("quantity", quantity).
			Msg("failed to upsert order item")
		return fmt.Errorf("failed to upsert order item: %w", err)
	}

	return nil
}

// DeleteItem removes a line item. Removing an absent item is a no-op.
func (r *orderRepository) DeleteItem(ctx context.Context, tx pgx.Tx, orderID, productID uuid.UUID) error {
	query := `DELETE FROM order_items WHERE order_id = $1 AND product_id = $2`

	_, err := tx.Exec(ctx, query, orderID, productID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID.String()).
			Str("product_id", productID.String()).
			Msg("failed to delete order item")
		return fmt.Errorf("failed to delete order item: %w", err)
	}

	return nil
}

// UpdateStatus sets an order's status within the provided transaction
// and, when payment is non-nil, replaces the stored payment blob.
func (r *orderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.Status, payment model.Payment) error {
	query := `
		UPDATE orders
		SET status = $2, payment = COALESCE($3, payment)
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, id, status, payment)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", id.String()).
			Str("status", string(status)).
			Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update order status: order %s not found", id)
	}

	r.logger.Debug().
		Str("order_id", id.String()).
		Str("status", string(status)).
		Msg("order status updated")

	return nil
}

// GetDetail retrieves an order with its line items and derived total.
// The total is recomputed from current product prices on every read.
func (r *orderRepository) GetDetail(ctx context.Context, id uuid.UUID) (*model.OrderDetail, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	itemsQuery := `
		SELECT ` + itemColumns + `
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY p.name
	`

	rows, err := r.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}

	items, err := scanItems(rows)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to scan order items")
		return nil, err
	}

	detail := &model.OrderDetail{Order: *order, Items: items}
	detail.ComputeTotal()

	return detail, nil
}

// ListByCustomer retrieves all of a customer's orders with their line
// items and derived totals, newest first.
func (r *orderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.OrderDetail, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to query customer orders")
		return nil, fmt.Errorf("failed to query customer orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.Payment, &o.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	details := make([]model.OrderDetail, 0, len(orders))
	for _, o := range orders {
		detail, err := r.GetDetail(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		if detail != nil {
			details = append(details, *detail)
		}
	}

	return details, nil
}
