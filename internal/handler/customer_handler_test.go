package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCustomerService is a mock implementation of service.CustomerService.
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Create(ctx context.Context, req *model.CustomerRequest) (*model.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Update(ctx context.Context, id uuid.UUID, req *model.CustomerRequest) (*model.Customer, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerService) ListOrders(ctx context.Context, id uuid.UUID) ([]model.OrderDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderDetail), args.Error(1)
}

func TestCustomerHandler_Create_Success(t *testing.T) {
	customerID := uuid.New()

	customer := &model.Customer{
		ID:        customerID,
		FirstName: "Alice",
		LastName:  "Appleseed",
		Email:     "alice@example.com",
	}

	mockCustomers := new(MockCustomerService)
	mockOrders := new(MockOrderService)
	mockCustomers.On("Create", mock.Anything, mock.AnythingOfType("*model.CustomerRequest")).Return(customer, nil)

	h := NewCustomerHandler(mockCustomers, mockOrders, zerolog.Nop())

	body := `{"firstName":"Alice","lastName":"Appleseed","email":"alice@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp model.Customer
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, customerID, resp.ID)
	assert.Equal(t, "alice@example.com", resp.Email)
}

func TestCustomerHandler_Create_DuplicateEmailMapsTo409(t *testing.T) {
	mockCustomers := new(MockCustomerService)
	mockOrders := new(MockOrderService)
	mockCustomers.On("Create", mock.Anything, mock.Anything).Return(nil, model.ErrDuplicateEmail)

	h := NewCustomerHandler(mockCustomers, mockOrders, zerolog.Nop())

	body := `{"firstName":"Alice","lastName":"Appleseed","email":"alice@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, model.ErrCodeDuplicateEmail, resp.Error)
}

func TestCustomerHandler_GetByID_NotFound(t *testing.T) {
	customerID := uuid.New()

	mockCustomers := new(MockCustomerService)
	mockOrders := new(MockOrderService)
	mockCustomers.On("GetByID", mock.Anything, customerID).Return(nil, model.ErrCustomerNotFound)

	h := NewCustomerHandler(mockCustomers, mockOrders, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/customers/"+customerID.String(), nil)
	req.SetPathValue("id", customerID.String())
	rec := httptest.NewRecorder()

	h.GetByID(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomerHandler_Delete_Success(t *testing.T) {
	customerID := uuid.New()

	mockCustomers := new(MockCustomerService)
	mockOrders := new(MockOrderService)
	mockCustomers.On("Delete", mock.Anything, customerID).Return(nil)

	h := NewCustomerHandler(mockCustomers, mockOrders, zerolog.Nop())

	req := httptest.NewRequest(http.MethodDelete, "/customers/"+customerID.String(), nil)
	req.SetPathValue("id", customerID.String())
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCustomerHandler_ListOrders_EmptyIsJSONArray(t *testing.T) {
	customerID := uuid.New()

	mockCustomers := new(MockCustomerService)
	mockOrders := new(MockOrderService)
	mockCustomers.On("ListOrders", mock.Anything, customerID).Return(nil, nil)

	h := NewCustomerHandler(mockCustomers, mockOrders, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/customers/"+customerID.String()+"/orders", nil)
	req.SetPathValue("id", customerID.String())
	rec := httptest.NewRecorder()

	h.ListOrders(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestCustomerHandler_GetCart(t *testing.T) {
	customerID := uuid.New()
	cartID := uuid.New()

	cart := &model.OrderDetail{
		Order: model.Order{ID: cartID, CustomerID: customerID, Status: model.StatusCart},
		Items: []model.OrderItem{},
	}

	mockCustomers := new(MockCustomerService)
	mockOrders := new(MockOrderService)
	mockOrders.On("GetOrCreateCart", mock.Anything, customerID).Return(cart, nil)

	h := NewCustomerHandler(mockCustomers, mockOrders, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/customers/"+customerID.String()+"/cart", nil)
	req.SetPathValue("id", customerID.String())
	rec := httptest.NewRecorder()

	h.GetCart(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp model.OrderDetail
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, cartID, resp.ID)
	assert.Equal(t, model.StatusCart, resp.Status)
}

func TestCustomerHandler_UpsertCartItem_Success(t *testing.T) {
	customerID := uuid.New()
	cartID := uuid.New()

	cart := &model.OrderDetail{
		Order: model.Order{ID: cartID, CustomerID: customerID, Status: model.StatusCart},
		Items: []model.OrderItem{{ProductName: "Drone", UnitPrice: 9999, Quantity: 2}},
		Total: 19998,
	}

	mockCustomers := new(MockCustomerService)
	mockOrders := new(MockOrderService)
	mockOrders.On("UpsertCartItem", mock.Anything, customerID, "Drone", 2).Return(cart, nil)

	h := NewCustomerHandler(mockCustomers, mockOrders, zerolog.Nop())

	body := `{"productName":"Drone","quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/customers/"+customerID.String()+"/cart/item", strings.NewReader(body))
	req.SetPathValue("id", customerID.String())
	rec := httptest.NewRecorder()

	h.UpsertCartItem(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockOrders.AssertExpectations(t)
}

func TestCustomerHandler_UpsertCartItem_MissingProductName(t *testing.T) {
	customerID := uuid.New()

	mockCustomers := new(MockCustomerService)
	mockOrders := new(MockOrderService)

	h := NewCustomerHandler(mockCustomers, mockOrders, zerolog.Nop())

	body := `{"quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/customers/"+customerID.String()+"/cart/item", strings.NewReader(body))
	req.SetPathValue("id", customerID.String())
	rec := httptest.NewRecorder()

	h.UpsertCartItem(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockOrders.AssertNotCalled(t, "UpsertCartItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCustomerHandler_UpsertCartItem_InsufficientStock(t *testing.T) {
	customerID := uuid.New()

	mockCustomers := new(MockCustomerService)
	mockOrders := new(MockOrderService)
	mockOrders.On("UpsertCartItem", mock.Anything, customerID, "Drone", 500).
		Return(nil, model.NewInsufficientStockError("Drone", 500, 50))

	h := NewCustomerHandler(mockCustomers, mockOrders, zerolog.Nop())

	body := `{"productName":"Drone","quantity":500}`
	req := httptest.NewRequest(http.MethodPost, "/customers/"+customerID.String()+"/cart/item", strings.NewReader(body))
	req.SetPathValue("id", customerID.String())
	rec := httptest.NewRecorder()

	h.UpsertCartItem(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, model.ErrCodeInsufficientStock, resp.Error)
	assert.Contains(t, resp.Message, "Drone")
}
