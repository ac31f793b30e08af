package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCheckout(t *testing.T) {
	m := New()

	m.ObserveCheckout(nil)
	m.ObserveCheckout(model.ErrEmptyOrder)
	m.ObserveCheckout(model.NewInsufficientStockError("Drone", 5, 3))
	m.ObserveCheckout(errors.New("connection reset"))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Checkouts.WithLabelValues(CheckoutSuccess)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Checkouts.WithLabelValues(CheckoutRejected)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Checkouts.WithLabelValues(CheckoutError)))
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	m := New()
	m.Requests.WithLabelValues("GET /products", http.MethodGet, "200").Inc()
	m.ObserveCheckout(nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	m.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_http_requests_total")
	assert.Contains(t, rec.Body.String(), "storefront_checkouts_total")
}

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.Checkouts.WithLabelValues(CheckoutSuccess).Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(a.Checkouts.WithLabelValues(CheckoutSuccess)))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.Checkouts.WithLabelValues(CheckoutSuccess)))
}
