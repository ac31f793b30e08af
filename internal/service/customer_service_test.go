package service

import (
	"context"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Customer, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestCustomerService_Create_Success(t *testing.T) {
	ctx := context.Background()

	mockCustomerRepo := new(MockCustomerRepository)
	mockOrderRepo := new(MockOrderRepository)

	svc := NewCustomerService(mockCustomerRepo, mockOrderRepo, zerolog.Nop())

	mockCustomerRepo.On("Create", ctx, mock.AnythingOfType("*model.Customer")).Return(nil)

	customer, err := svc.Create(ctx, &model.CustomerRequest{
		FirstName: strPtr("Alice"),
		LastName:  strPtr("Appleseed"),
		Email:     strPtr("alice@example.com"),
	})

	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.NotEqual(t, uuid.Nil, customer.ID)
	assert.Equal(t, "Alice", customer.FirstName)
	assert.Equal(t, "alice@example.com", customer.Email)
	assert.Nil(t, customer.Address)

	mockCustomerRepo.AssertExpectations(t)
}

func TestCustomerService_Create_MissingFields(t *testing.T) {
	ctx := context.Background()

	mockCustomerRepo := new(MockCustomerRepository)
	mockOrderRepo := new(MockOrderRepository)

	svc := NewCustomerService(mockCustomerRepo, mockOrderRepo, zerolog.Nop())

	tests := []struct {
		name string
		req  *model.CustomerRequest
	}{
		{name: "nil request", req: nil},
		{name: "missing email", req: &model.CustomerRequest{FirstName: strPtr("Alice"), LastName: strPtr("Appleseed")}},
		{name: "missing name", req: &model.CustomerRequest{Email: strPtr("alice@example.com")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customer, err := svc.Create(ctx, tt.req)

			assert.Nil(t, customer)

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, model.ErrCodeMissingField, domainErr.Code)
		})
	}

	mockCustomerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCustomerService_Create_DuplicateEmail(t *testing.T) {
	ctx := context.Background()

	mockCustomerRepo := new(MockCustomerRepository)
	mockOrderRepo := new(MockOrderRepository)

	svc := NewCustomerService(mockCustomerRepo, mockOrderRepo, zerolog.Nop())

	mockCustomerRepo.On("Create", ctx, mock.AnythingOfType("*model.Customer")).Return(model.ErrDuplicateEmail)

	customer, err := svc.Create(ctx, &model.CustomerRequest{
		FirstName: strPtr("Alice"),
		LastName:  strPtr("Appleseed"),
		Email:     strPtr("alice@example.com"),
	})

	assert.Nil(t, customer)
	assert.ErrorIs(t, err, model.ErrDuplicateEmail)
}

func TestCustomerService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	mockCustomerRepo := new(MockCustomerRepository)
	mockOrderRepo := new(MockOrderRepository)

	svc := NewCustomerService(mockCustomerRepo, mockOrderRepo, zerolog.Nop())

	mockCustomerRepo.On("GetByID", ctx, customerID).Return(nil, nil)

	customer, err := svc.GetByID(ctx, customerID)

	assert.Nil(t, customer)
	assert.ErrorIs(t, err, model.ErrCustomerNotFound)
}

func TestCustomerService_Update_PatchSemantics(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	existing := &model.Customer{
		ID:        customerID,
		FirstName: "Alice",
		LastName:  "Appleseed",
		Email:     "alice@example.com",
		CreatedAt: time.Now(),
	}

	mockCustomerRepo := new(MockCustomerRepository)
	mockOrderRepo := new(MockOrderRepository)

	svc := NewCustomerService(mockCustomerRepo, mockOrderRepo, zerolog.Nop())

	mockCustomerRepo.On("GetByID", ctx, customerID).Return(existing, nil)
	mockCustomerRepo.On("Update", ctx, mock.AnythingOfType("*model.Customer")).Return(nil)

	address := &model.Address{Street: "123 Main St", City: "SF", State: "CA", PostalCode: "12345", Country: "US"}
	updated, err := svc.Update(ctx, customerID, &model.CustomerRequest{
		Email:   strPtr("alice2@example.com"),
		Address: address,
	})

	require.NoError(t, err)
	// Untouched fields survive; provided fields are replaced.
	assert.Equal(t, "Alice", updated.FirstName)
	assert.Equal(t, "alice2@example.com", updated.Email)
	assert.Equal(t, address, updated.Address)

	mockCustomerRepo.AssertExpectations(t)
}

func TestCustomerService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	mockCustomerRepo := new(MockCustomerRepository)
	mockOrderRepo := new(MockOrderRepository)

	svc := NewCustomerService(mockCustomerRepo, mockOrderRepo, zerolog.Nop())

	mockCustomerRepo.On("Delete", ctx, customerID).Return(false, nil)

	err := svc.Delete(ctx, customerID)

	assert.ErrorIs(t, err, model.ErrCustomerNotFound)
}

func TestCustomerService_ListOrders(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	orders := []model.OrderDetail{
		{Order: model.Order{ID: uuid.New(), CustomerID: customerID, Status: model.StatusDelivered}},
		{Order: model.Order{ID: uuid.New(), CustomerID: customerID, Status: model.StatusCart}},
	}

	mockCustomerRepo := new(MockCustomerRepository)
	mockOrderRepo := new(MockOrderRepository)

	svc := NewCustomerService(mockCustomerRepo, mockOrderRepo, zerolog.Nop())

	mockCustomerRepo.On("GetByID", ctx, customerID).Return(testCustomer(customerID), nil)
	mockOrderRepo.On("ListByCustomer", ctx, customerID).Return(orders, nil)

	result, err := svc.ListOrders(ctx, customerID)

	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestCustomerService_ListOrders_CustomerNotFound(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	mockCustomerRepo := new(MockCustomerRepository)
	mockOrderRepo := new(MockOrderRepository)

	svc := NewCustomerService(mockCustomerRepo, mockOrderRepo, zerolog.Nop())

	mockCustomerRepo.On("GetByID", ctx, customerID).Return(nil, nil)

	result, err := svc.ListOrders(ctx, customerID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, model.ErrCustomerNotFound)
	mockOrderRepo.AssertNotCalled(t, "ListByCustomer", mock.Anything, mock.Anything)
}
