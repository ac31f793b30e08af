package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CustomerHandler handles customer-related HTTP requests, including the
// customer's cart.
type CustomerHandler struct {
	customers service.CustomerService
	orders    service.OrderService
	logger    zerolog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(customers service.CustomerService, orders service.OrderService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		orders:    orders,
		logger:    logger.With().Str("handler", "customer").Logger(),
	}
}

// Create handles POST /customers requests.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	customer, err := h.customers.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, customer)
}

// GetByID handles GET /customers/{id} requests.
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	customer, err := h.customers.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// Update handles PATCH /customers/{id} requests.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	customer, err := h.customers.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}

// Delete handles DELETE /customers/{id} requests.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.customers.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOrders handles GET /customers/{id}/orders requests.
func (h *CustomerHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	orders, err := h.customers.ListOrders(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if orders == nil {
		orders = []model.OrderDetail{}
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetCart handles GET /customers/{id}/cart requests. The cart is created
// lazily on first access.
func (h *CustomerHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	cart, err := h.orders.GetOrCreateCart(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// UpsertCartItem handles POST /customers/{id}/cart/item requests.
func (h *CustomerHandler) UpsertCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if req.ProductName == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "productName is required", h.logger)
		return
	}

	cart, err := h.orders.UpsertCartItem(r.Context(), id, req.ProductName, req.Quantity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}
