package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

// Create adds a new product to the catalogue. The referenced category
// must exist.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if req == nil || req.Name == nil || *req.Name == "" || req.Price == nil || req.CategoryID == nil {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "name, price and categoryId are required.")
	}
	if *req.Price < 0 {
		return nil, model.NewDomainError(model.ErrCodeInvalidPrice, "Price must be a non-negative integer of cents.")
	}

	product := &model.Product{
		ID:         uuid.New(),
		Name:       *req.Name,
		Price:      *req.Price,
		CategoryID: *req.CategoryID,
		CreatedAt:  time.Now().UTC(),
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, model.NewDomainError(model.ErrCodeInvalidQuantity, "Stock must be a non-negative integer.")
		}
		product.Stock = *req.Stock
	}

	category, err := s.categoryRepo.GetByID(ctx, product.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Warn().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("name", product.Name).
		Msg("product created")

	return product, nil
}

// GetAll retrieves products with pagination, optionally filtered by
// category.
func (s *productService) GetAll(ctx context.Context, limit, offset int, categoryID *uuid.UUID) ([]model.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.productRepo.GetAll(ctx, limit, offset, categoryID)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to get products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// Update applies the non-nil fields of the request to a product.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, model.NewDomainError(model.ErrCodeInvalidPrice, "Price must be a non-negative integer of cents.")
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, model.NewDomainError(model.ErrCodeInvalidQuantity, "Stock must be a non-negative integer.")
		}
		product.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category: %w", err)
		}
		if category == nil {
			return nil, model.ErrCategoryNotFound
		}
		product.CategoryID = *req.CategoryID
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, err
	}

	return product, nil
}

// Delete removes a product from the catalogue.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")

	return nil
}
