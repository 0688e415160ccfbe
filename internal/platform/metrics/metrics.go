package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the site.
type Metrics struct {
	registry         *prometheus.Registry
	requestsTotal    prometheus.Counter
	errorsTotal      prometheus.Counter
	upstreamFetches  *prometheus.CounterVec
	carouselAdvances *prometheus.CounterVec
	playOutcomes     *prometheus.CounterVec
	carouselSessions prometheus.Gauge
	contentReloads   prometheus.Counter
}

// New creates and registers Prometheus metrics for the site.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "site_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "site_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	upstreamFetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "site_upstream_fetch_total",
		Help: "Home content lookups by result (cache_hit, fetched, failed)",
	}, []string{"result"})
	carouselAdvances := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "site_carousel_advances_total",
		Help: "Carousel clip switches by reason (ended, timer, jump)",
	}, []string{"reason"})
	playOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "site_carousel_play_outcomes_total",
		Help: "Resolved carousel play requests by outcome",
	}, []string{"kind"})
	carouselSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "site_carousel_sessions_active",
		Help: "Number of connected live carousel sessions",
	})
	contentReloads := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "site_content_reloads_total",
		Help: "Number of content documents reloaded from disk",
	})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		upstreamFetches,
		carouselAdvances,
		playOutcomes,
		carouselSessions,
		contentReloads,
	)

	return &Metrics{
		registry:         registry,
		requestsTotal:    requestsTotal,
		errorsTotal:      errorsTotal,
		upstreamFetches:  upstreamFetches,
		carouselAdvances: carouselAdvances,
		playOutcomes:     playOutcomes,
		carouselSessions: carouselSessions,
		contentReloads:   contentReloads,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// IncUpstreamFetch records one home content lookup.
func (m *Metrics) IncUpstreamFetch(result string) {
	m.upstreamFetches.WithLabelValues(result).Inc()
}

// RecordAdvance implements carousel.Recorder.
func (m *Metrics) RecordAdvance(reason string) {
	m.carouselAdvances.WithLabelValues(reason).Inc()
}

// RecordPlayOutcome implements carousel.Recorder.
func (m *Metrics) RecordPlayOutcome(outcome string) {
	m.playOutcomes.WithLabelValues(outcome).Inc()
}

// SetCarouselSessions sets the live session gauge.
func (m *Metrics) SetCarouselSessions(n int) {
	m.carouselSessions.Set(float64(n))
}

// IncContentReloads increments the content reload counter.
func (m *Metrics) IncContentReloads() {
	m.contentReloads.Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values (e.g. live sessions).
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
