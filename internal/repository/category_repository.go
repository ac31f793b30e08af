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

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

// Create inserts a new category.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, category.ID, category.Name, category.Description, category.CreatedAt)
	if err != nil {
		if translated := translateConstraintErr(err); translated != err {
			return translated
		}
		r.logger.Error().Err(err).Str("category_id", category.ID.String()).Msg("failed to create category")
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetAll retrieves all categories.
func (r *categoryRepository) GetAll(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, name, description, created_at
		FROM categories
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetByID retrieves a single category by its ID.
func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	query := `SELECT id, name, description, created_at FROM categories WHERE id = $1`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("category_id", id.String()).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

// GetByName retrieves a single category by its unique name.
func (r *categoryRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	query := `SELECT id, name, description, created_at FROM categories WHERE name = $1`

	var c model.Category
	err := r.pool.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("category_name", name).Msg("failed to query category by name")
		return nil, fmt.Errorf("failed to query category by name: %w", err)
	}

	return &c, nil
}

// Update persists the full category row.
func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `UPDATE categories SET name = $2, description = $3 WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, category.ID, category.Name, category.Description)
	if err != nil {
		if translated := translateConstraintErr(err); translated != err {
			return translated
		}
		r.logger.Error().Err(err).Str("category_id", category.ID.String()).Msg("failed to update category")
		return fmt.Errorf("failed to update category: %w", err)
	}

	return nil
}
