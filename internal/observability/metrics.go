package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the forecast
// service and its provider adapter.
type Metrics struct {
	ForecastRequests *prometheus.CounterVec // labels: outcome={success,not_found,provider_error,invalid_input}
	Assessments      *prometheus.CounterVec // labels: risk_level={LOW,MODERATE,HIGH}

	// Provider adapter metrics.
	ProviderRequests *prometheus.CounterVec   // labels: endpoint={geocode,forecast}, outcome={success,error}
	ProviderDuration *prometheus.HistogramVec // labels: endpoint={geocode,forecast}
	GeocodeCache     *prometheus.CounterVec   // labels: result={hit,miss}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.ForecastRequests,
		m.Assessments,
		m.ProviderRequests,
		m.ProviderDuration,
		m.GeocodeCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ForecastRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_insights",
			Name:      "forecast_requests_total",
			Help:      "Forecast report builds by outcome.",
		}, []string{"outcome"}),
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_insights",
			Name:      "assessments_total",
			Help:      "Flood-risk assessments by resulting risk level.",
		}, []string{"risk_level"}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_insights",
			Name:      "provider_requests_total",
			Help:      "Open-Meteo API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flood_insights",
			Name:      "provider_request_duration_seconds",
			Help:      "Open-Meteo API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_insights",
			Name:      "geocode_cache_total",
			Help:      "Geocode cache lookups by result.",
		}, []string{"result"}),
	}
}
