package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"storefront/internal/metrics"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// orderService implements OrderService. Every multi-step business
// operation runs inside a single database transaction; a failed
// precondition rolls the whole transaction back so partial effects are
// never observable.
type orderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	metrics      *metrics.StoreMetrics
	logger       zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	storeMetrics *metrics.StoreMetrics,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		metrics:      storeMetrics,
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

// rollbackOnErr rolls the transaction back when the operation failed.
// Rollback after a successful commit returns pgx.ErrTxClosed, which is
// expected and ignored.
func (s *orderService) rollbackOnErr(ctx context.Context, tx pgx.Tx, err error) {
	if err == nil {
		return
	}
	if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
		s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
	}
}

// GetOrCreateCart returns the customer's open cart, creating an empty one
// if none exists. Creation happens lazily on first access.
func (s *orderService) GetOrCreateCart(ctx context.Context, customerID uuid.UUID) (*model.OrderDetail, error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	defer func() { s.rollbackOnErr(ctx, tx, err) }()

	cart, err := s.findOrCreateCart(ctx, tx, customerID)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return s.orderRepo.GetDetail(ctx, cart.ID)
}

// findOrCreateCart resolves the customer and their open cart within the
// transaction, inserting a fresh cart order when none exists. Keeping
// the creation inside the caller's transaction means a later failure in
// the same operation never leaves an orphaned empty cart behind.
func (s *orderService) findOrCreateCart(ctx context.Context, tx pgx.Tx, customerID uuid.UUID) (*model.Order, error) {
	customer, err := s.customerRepo.GetByIDTx(ctx, tx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve customer: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}

	cart, err := s.orderRepo.GetCartForUpdate(ctx, tx, customerID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	cart = &model.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		Status:     model.StatusCart,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.orderRepo.CreateCart(ctx, tx, cart); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", cart.ID.String()).
		Str("customer_id", customerID.String()).
		Msg("cart created")

	return cart, nil
}

// UpsertCartItem sets the quantity of a product in the customer's cart.
// Set semantics: repeating the call with the same quantity is a no-op,
// and zero removes the line. The stock check here is advisory only;
// nothing is reserved until checkout.
func (s *orderService) UpsertCartItem(ctx context.Context, customerID uuid.UUID, productName string, quantity int) (*model.OrderDetail, error) {
	if quantity < 0 {
		return nil, model.ErrInvalidQuantity
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	defer func() { s.rollbackOnErr(ctx, tx, err) }()

	product, err := s.productRepo.GetByNameTx(ctx, tx, productName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}
	if product == nil {
		err = model.ErrProductNotFound
		return nil, err
	}

	cart, err := s.findOrCreateCart(ctx, tx, customerID)
	if err != nil {
		return nil, err
	}

	if quantity > product.Stock {
		err = model.NewInsufficientStockError(product.Name, quantity, product.Stock)
		s.logger.Warn().
			Str("customer_id", customerID.String()).
			Str("product_name", productName).
			Int("requested", quantity).
			Int("available", product.Stock).
			Msg("insufficient stock for cart item")
		return nil, err
	}

	if quantity == 0 {
		err = s.orderRepo.DeleteItem(ctx, tx, cart.ID, product.ID)
	} else {
		err = s.orderRepo.UpsertItem(ctx, tx, cart.ID, product.ID, quantity)
	}
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", cart.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	s.logger.Info().
		Str("order_id", cart.ID.String()).
		Str("product_name", productName).
		Int("quantity", quantity).
		Msg("cart item updated")

	return s.orderRepo.GetDetail(ctx, cart.ID)
}

// GetByID retrieves an order with its items and derived total.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderDetail, error) {
	detail, err := s.orderRepo.GetDetail(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if detail == nil {
		return nil, model.ErrOrderNotFound
	}
	return detail, nil
}

// UpdateStatus advances an order's status. A transition to 'processing'
// is a checkout and runs the full precondition chain; other targets are
// plain validated status updates.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *model.OrderUpdateRequest) (*model.OrderDetail, error) {
	if req.Status == model.StatusProcessing {
		return s.Checkout(ctx, id, req.Status, req.Payment)
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	defer func() { s.rollbackOnErr(ctx, tx, err) }()

	order, err := s.orderRepo.GetForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		err = model.ErrOrderNotFound
		return nil, err
	}

	if err = model.ValidateStatusTransition(order.Status, req.Status); err != nil {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("from", string(order.Status)).
			Str("to", string(req.Status)).
			Msg("invalid status transition")
		return nil, err
	}

	if err = s.orderRepo.UpdateStatus(ctx, tx, id, req.Status, req.Payment); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(req.Status)).
		Msg("order status updated")

	return s.orderRepo.GetDetail(ctx, id)
}

// Checkout validates and finalises a cart. Preconditions run in order
// and each failure aborts the whole transaction: the order must exist,
// the transition must be legal, the order must have items, the customer
// must have an address, a payment method must be present and every line
// item must still be in stock. Stock moved since the item was added, so
// it is re-checked here under row locks and decremented in the same
// transaction; of two concurrent checkouts competing for the last units,
// exactly one succeeds.
func (s *orderService) Checkout(ctx context.Context, id uuid.UUID, status model.Status, payment model.Payment) (*model.OrderDetail, error) {
	if status != model.StatusProcessing {
		return nil, model.ErrInvalidCheckoutStatus
	}

	detail, err := s.checkout(ctx, id, payment)
	if s.metrics != nil {
		s.metrics.ObserveCheckout(err)
	}
	return detail, err
}

func (s *orderService) checkout(ctx context.Context, id uuid.UUID, payment model.Payment) (*model.OrderDetail, error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}
	defer func() { s.rollbackOnErr(ctx, tx, err) }()

	order, err := s.orderRepo.GetForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		err = model.ErrOrderNotFound
		return nil, err
	}

	if err = model.ValidateStatusTransition(order.Status, model.StatusProcessing); err != nil {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("from", string(order.Status)).
			Msg("checkout rejected: invalid status transition")
		return nil, err
	}

	items, err := s.orderRepo.GetItemsTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		err = model.ErrEmptyOrder
		return nil, err
	}

	customer, err := s.customerRepo.GetByIDTx(ctx, tx, order.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.Address == nil {
		err = model.ErrMissingAddress
		return nil, err
	}

	if payment == nil && order.Payment == nil {
		err = model.ErrMissingPayment
		return nil, err
	}

	if err = s.decrementStock(ctx, tx, items); err != nil {
		return nil, err
	}

	if err = s.orderRepo.UpdateStatus(ctx, tx, id, model.StatusProcessing, payment); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to commit checkout")
		return nil, fmt.Errorf("failed to checkout: %w", err)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("customer_id", order.CustomerID.String()).
		Int("item_count", len(items)).
		Msg("checkout completed")

	return s.orderRepo.GetDetail(ctx, id)
}

// decrementStock re-validates availability for every line item under row
// locks and applies the decrement. Products are locked in ID order.
func (s *orderService) decrementStock(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return slices.Compare(a[:], b[:])
	})

	products, err := s.productRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return err
	}

	byID := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return model.ErrProductNotFound
		}
		if item.Quantity > product.Stock {
			s.logger.Warn().
				Str("product_id", product.ID.String()).
				Str("product_name", product.Name).
				Int("requested", item.Quantity).
				Int("available", product.Stock).
				Msg("checkout rejected: insufficient stock")
			return model.NewInsufficientStockError(product.Name, item.Quantity, product.Stock)
		}
	}

	for _, item := range items {
		if err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	return nil
}
