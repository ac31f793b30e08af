package metrics

import (
	"errors"
	"net/http"

	"storefront/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Checkout outcome labels.
const (
	CheckoutSuccess  = "success"
	CheckoutRejected = "rejected"
	CheckoutError    = "error"
)

// StoreMetrics holds the Prometheus collectors for the API server. Each
// instance owns its registry so tests can create them freely without
// duplicate-registration panics.
type StoreMetrics struct {
	registry *prometheus.Registry

	Requests  *prometheus.CounterVec
	Latency   *prometheus.HistogramVec
	Checkouts *prometheus.CounterVec
}

// New creates the store metrics with a fresh registry.
func New() *StoreMetrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "method", "status"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storefront",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"handler"})

	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "checkouts_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"result"})

	registry.MustRegister(
		requests,
		latency,
		checkouts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &StoreMetrics{
		registry:  registry,
		Requests:  requests,
		Latency:   latency,
		Checkouts: checkouts,
	}
}

// ObserveCheckout records a checkout outcome. Business-rule rejections
// are counted separately from storage failures.
func (m *StoreMetrics) ObserveCheckout(err error) {
	result := CheckoutSuccess
	if err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			result = CheckoutRejected
		} else {
			result = CheckoutError
		}
	}
	m.Checkouts.WithLabelValues(result).Inc()
}

// Handler exposes the registry in Prometheus text format.
func (m *StoreMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
