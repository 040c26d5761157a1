package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec   // labels: method, path, status
	HTTPDuration *prometheus.HistogramVec // labels: method, path

	ClaimsSubmitted      prometheus.Counter
	ClaimPublishFailures prometheus.Counter
	CatalogBootstraps    prometheus.Counter

	StoreConnects  prometheus.Counter
	StoreConnected prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dataclaim",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dataclaim",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		ClaimsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dataclaim",
			Name:      "claims_submitted_total",
			Help:      "Total data claims durably written.",
		}),
		ClaimPublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dataclaim",
			Name:      "claim_publish_failures_total",
			Help:      "Total claim-event publish attempts that failed.",
		}),
		CatalogBootstraps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dataclaim",
			Name:      "catalog_bootstraps_total",
			Help:      "Total times the empty location catalog was seeded.",
		}),
		StoreConnects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dataclaim",
			Name:      "store_connects_total",
			Help:      "Total MongoDB connection establishments.",
		}),
		StoreConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dataclaim",
			Name:      "store_connected",
			Help:      "1 when a live MongoDB connection is cached, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.ClaimsSubmitted,
		m.ClaimPublishFailures,
		m.CatalogBootstraps,
		m.StoreConnects,
		m.StoreConnected,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		HTTPRequests:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "dataclaim", Name: "http_requests_total"}, []string{"method", "path", "status"}),
		HTTPDuration:         prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "dataclaim", Name: "http_request_duration_seconds"}, []string{"method", "path"}),
		ClaimsSubmitted:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "dataclaim", Name: "claims_submitted_total"}),
		ClaimPublishFailures: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "dataclaim", Name: "claim_publish_failures_total"}),
		CatalogBootstraps:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "dataclaim", Name: "catalog_bootstraps_total"}),
		StoreConnects:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "dataclaim", Name: "store_connects_total"}),
		StoreConnected:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "dataclaim", Name: "store_connected"}),
	}
}
