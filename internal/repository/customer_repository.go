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

// customerRepository implements the CustomerRepository interface using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

// Create inserts a new customer.
func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	query := `
		INSERT INTO customers (id, first_name, last_name, email, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		customer.ID,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.Address,
		customer.CreatedAt,
	)
	if err != nil {
		if translated := translateConstraintErr(err); translated != err {
			return translated
		}
		r.logger.Error().Err(err).Str("customer_id", customer.ID.String()).Msg("failed to create customer")
		return fmt.Errorf("failed to create customer: %w", err)
	}

	r.logger.Debug().Str("customer_id", customer.ID.String()).Msg("customer created")

	return nil
}

const customerColumns = `id, first_name, last_name, email, address, created_at`

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Address, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID retrieves a single customer by its ID.
func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customer, err := scanCustomer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("customer_id", id.String()).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return customer, nil
}

// GetByIDTx retrieves a customer within the provided transaction.
func (r *customerRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customer, err := scanCustomer(tx.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to query customer in transaction")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return customer, nil
}

// Update persists the full customer row.
func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $2, last_name = $3, email = $4, address = $5
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		customer.ID,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.Address,
	)
	if err != nil {
		if translated := translateConstraintErr(err); translated != err {
			return translated
		}
		r.logger.Error().Err(err).Str("customer_id", customer.ID.String()).Msg("failed to update customer")
		return fmt.Errorf("failed to update customer: %w", err)
	}

	return nil
}

// Delete removes a customer. It reports whether a row was deleted.
func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to delete customer")
		return false, fmt.Errorf("failed to delete customer: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
