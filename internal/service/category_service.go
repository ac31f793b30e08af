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

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// Create adds a new category.
func (s *categoryService) Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error) {
	if req == nil || req.Name == nil || *req.Name == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "name is required.")
	}

	category := &model.Category{
		ID:        uuid.New(),
		Name:      *req.Name,
		CreatedAt: time.Now().UTC(),
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.logger.Warn().Err(err).Str("name", category.Name).Msg("failed to create category")
		return nil, err
	}

	s.logger.Info().Str("category_id", category.ID.String()).Str("name", category.Name).Msg("category created")

	return category, nil
}

// GetAll retrieves all categories.
func (s *categoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get categories")
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

// GetByID retrieves a single category by ID.
func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to get category")
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}
	return category, nil
}

// Update applies the non-nil fields of the request to a category.
func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error) {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		s.logger.Warn().Err(err).Str("category_id", id.String()).Msg("failed to update category")
		return nil, err
	}

	return category, nil
}
