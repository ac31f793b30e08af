package router

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/metrics"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	customerHandler *handler.CustomerHandler,
	productHandler *handler.ProductHandler,
	categoryHandler *handler.CategoryHandler,
	orderHandler *handler.OrderHandler,
	storeMetrics *metrics.StoreMetrics,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.Handle("GET /metrics", storeMetrics.Handler())

	// Customer routes, including the customer's cart
	mux.HandleFunc("POST /customers", customerHandler.Create)
	mux.HandleFunc("GET /customers/{id}", customerHandler.GetByID)
	mux.HandleFunc("PATCH /customers/{id}", customerHandler.Update)
	mux.HandleFunc("DELETE /customers/{id}", customerHandler.Delete)
	mux.HandleFunc("GET /customers/{id}/orders", customerHandler.ListOrders)
	mux.HandleFunc("GET /customers/{id}/cart", customerHandler.GetCart)
	mux.HandleFunc("POST /customers/{id}/cart/item", customerHandler.UpsertCartItem)

	// Product routes
	mux.HandleFunc("POST /products", productHandler.Create)
	mux.HandleFunc("GET /products", productHandler.GetAll)
	mux.HandleFunc("GET /products/{id}", productHandler.GetByID)
	mux.HandleFunc("PATCH /products/{id}", productHandler.Update)
	mux.HandleFunc("DELETE /products/{id}", productHandler.Delete)

	// Category routes
	mux.HandleFunc("POST /categories", categoryHandler.Create)
	mux.HandleFunc("GET /categories", categoryHandler.GetAll)
	mux.HandleFunc("GET /categories/{id}", categoryHandler.GetByID)
	mux.HandleFunc("PATCH /categories/{id}", categoryHandler.Update)

	// Order routes
	mux.HandleFunc("GET /orders/{id}", orderHandler.GetByID)
	mux.HandleFunc("PATCH /orders/{id}", orderHandler.Update)

	// Apply middleware in order: Recovery -> Logging -> Metrics -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Metrics(storeMetrics, mux)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
