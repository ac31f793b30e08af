package catalog

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Importer upserts catalogue feed entries into the store. Categories
// named by the feed are created on demand; products are matched by
// their unique name, so re-importing a feed refreshes prices and stock
// instead of duplicating rows.
type Importer struct {
	loader       Loader
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewImporter creates a new catalogue importer.
func NewImporter(
	loader Loader,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger zerolog.Logger,
) *Importer {
	return &Importer{
		loader:       loader,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("component", "catalog-importer").Logger(),
	}
}

// Import loads the feed from the given source and writes every entry to
// the store.
func (i *Importer) Import(ctx context.Context, source string) error {
	entries, err := i.loader.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to load catalogue: %w", err)
	}

	// Category lookups are cached per import run; feeds repeat the same
	// handful of category names on most lines.
	categories := make(map[string]uuid.UUID)

	imported := 0
	for _, entry := range entries {
		categoryID, err := i.ensureCategory(ctx, categories, entry.Category)
		if err != nil {
			return err
		}

		product := &model.Product{
			ID:          uuid.New(),
			Name:        entry.Name,
			Description: entry.Description,
			Price:       entry.Price,
			Stock:       entry.Stock,
			CategoryID:  categoryID,
			CreatedAt:   time.Now().UTC(),
		}

		if err := i.productRepo.UpsertByName(ctx, product); err != nil {
			return fmt.Errorf("failed to import product %q: %w", entry.Name, err)
		}
		imported++
	}

	i.logger.Info().
		Str("source", source).
		Int("products", imported).
		Int("categories", len(categories)).
		Msg("catalogue import completed")

	return nil
}

// ensureCategory resolves a category name to its ID, creating the
// category when it does not exist yet.
func (i *Importer) ensureCategory(ctx context.Context, cache map[string]uuid.UUID, name string) (uuid.UUID, error) {
	if name == "" {
		name = "Uncategorised"
	}

	if id, ok := cache[name]; ok {
		return id, nil
	}

	category, err := i.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to resolve category %q: %w", name, err)
	}

	if category == nil {
		category = &model.Category{
			ID:        uuid.New(),
			Name:      name,
			CreatedAt: time.Now().UTC(),
		}
		if err := i.categoryRepo.Create(ctx, category); err != nil {
			return uuid.Nil, fmt.Errorf("failed to create category %q: %w", name, err)
		}
		i.logger.Debug().Str("name", name).Msg("category created from feed")
	}

	cache[name] = category.ID
	return category.ID, nil
}
