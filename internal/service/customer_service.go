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

// customerService implements CustomerService.
type customerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	logger       zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	logger zerolog.Logger,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		logger:       logger.With().Str("service", "customer").Logger(),
	}
}

// Create registers a new customer.
func (s *customerService) Create(ctx context.Context, req *model.CustomerRequest) (*model.Customer, error) {
	if req == nil || req.FirstName == nil || req.LastName == nil || req.Email == nil {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "firstName, lastName and email are required.")
	}

	customer := &model.Customer{
		ID:        uuid.New(),
		FirstName: *req.FirstName,
		LastName:  *req.LastName,
		Email:     *req.Email,
		Address:   req.Address,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		s.logger.Warn().Err(err).Str("email", customer.Email).Msg("failed to create customer")
		return nil, err
	}

	s.logger.Info().Str("customer_id", customer.ID.String()).Msg("customer created")

	return customer, nil
}

// GetByID retrieves a single customer by ID.
func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to get customer")
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}
	return customer, nil
}

// Update applies the non-nil fields of the request to a customer.
func (s *customerService) Update(ctx context.Context, id uuid.UUID, req *model.CustomerRequest) (*model.Customer, error) {
	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		customer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		customer.LastName = *req.LastName
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Address != nil {
		customer.Address = req.Address
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		s.logger.Warn().Err(err).Str("customer_id", id.String()).Msg("failed to update customer")
		return nil, err
	}

	s.logger.Info().Str("customer_id", id.String()).Msg("customer updated")

	return customer, nil
}

// Delete removes a customer.
func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.customerRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to delete customer")
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if !deleted {
		return model.ErrCustomerNotFound
	}

	s.logger.Info().Str("customer_id", id.String()).Msg("customer deleted")

	return nil
}

// ListOrders retrieves all of a customer's orders, newest first.
func (s *customerService) ListOrders(ctx context.Context, id uuid.UUID) ([]model.OrderDetail, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to get customer")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}

	orders, err := s.orderRepo.ListByCustomer(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}
