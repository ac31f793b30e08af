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

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, name, description, price, stock, category_id, created_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, stock, category_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.CategoryID,
		product.CreatedAt,
	)
	if err != nil {
		if translated := translateConstraintErr(err); translated != err {
			return translated
		}
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", product.ID.String()).Str("name", product.Name).Msg("product created")

	return nil
}

// GetAll retrieves products with pagination, optionally filtered by category.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int, categoryID *uuid.UUID) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($3::uuid IS NULL OR category_id = $3)
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset, categoryID)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return product, nil
}

// GetByNameTx retrieves a product by its unique name within the provided
// transaction.
func (r *productRepository) GetByNameTx(ctx context.Context, tx pgx.Tx, name string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1`

	product, err := scanProduct(tx.QueryRow(ctx, query, name))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_name", name).Msg("failed to query product by name")
		return nil, fmt.Errorf("failed to query product by name: %w", err)
	}

	return product, nil
}

// GetByIDsForUpdate retrieves and row-locks products by their IDs within
// the provided transaction. Locking in ID order keeps concurrent
// checkouts from deadlocking against each other.
func (r *productRepository) GetByIDsForUpdate(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to lock products")
		return nil, fmt.Errorf("failed to lock products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// DecrementStock subtracts quantity from a product's stock within the
// provided transaction. The schema's stock check constraint is the last
// line of defence; callers validate availability first.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error {
	query := `UPDATE products SET stock = stock - $2 WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, quantity)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("product_id", id.String()).
			Int("quantity", quantity).
			Msg("failed to decrement stock")
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to decrement stock: product %s not found", id)
	}

	return nil
}

// Update persists the full product row.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5, category_id = $6
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.CategoryID,
	)
	if err != nil {
		if translated := translateConstraintErr(err); translated != err {
			return translated
		}
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// Delete removes a product. It reports whether a row was deleted.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// UpsertByName inserts a product or refreshes an existing one with the
// same name. Used by the catalogue importer.
func (r *productRepository) UpsertByName(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, stock, category_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO UPDATE
		SET description = EXCLUDED.description,
		    price = EXCLUDED.price,
		    stock = EXCLUDED.stock,
		    category_id = EXCLUDED.category_id
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.CategoryID,
		product.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to upsert product")
		return fmt.Errorf("failed to upsert product: %w", err)
	}

	return nil
}
