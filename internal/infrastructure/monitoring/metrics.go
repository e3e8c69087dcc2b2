package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "optivise_installer"

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Lifecycle metrics
	LifecycleTotal    *prometheus.CounterVec
	LifecycleDuration *prometheus.HistogramVec

	// Status metrics
	ManifestsInstalled *prometheus.GaugeVec
	HostsInstalled     *prometheus.GaugeVec

	// Stream metrics
	StreamClients  prometheus.Gauge
	StreamMessages prometheus.Counter

	startTime time.Time
}

// NewMetrics creates a collector backed by its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),

		LifecycleTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lifecycle_operations_total",
				Help:      "Install and uninstall operations by host and result",
			},
			[]string{"operation", "app", "result"},
		),
		LifecycleDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "lifecycle_duration_seconds",
				Help:      "Install and uninstall duration in seconds",
				Buckets:   []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation", "app"},
		),

		ManifestsInstalled: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "manifest_installed",
				Help:      "1 when the add-in manifest is present for the host",
			},
			[]string{"app"},
		),
		HostsInstalled: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "host_installed",
				Help:      "1 when the host application bundle is present",
			},
			[]string{"app"},
		),

		StreamClients: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "stream_clients",
				Help:      "Number of connected status stream clients",
			},
		),
		StreamMessages: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stream_messages_total",
				Help:      "Status snapshots sent to stream clients",
			},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Process uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordLifecycle records one install or uninstall outcome
func (m *Metrics) RecordLifecycle(operation, app, result string, duration time.Duration) {
	m.LifecycleTotal.WithLabelValues(operation, app, result).Inc()
	m.LifecycleDuration.WithLabelValues(operation, app).Observe(duration.Seconds())
}

// SetAppStatus publishes the latest observed state for a host
func (m *Metrics) SetAppStatus(app string, hostInstalled, manifestInstalled bool) {
	m.HostsInstalled.WithLabelValues(app).Set(boolGauge(hostInstalled))
	m.ManifestsInstalled.WithLabelValues(app).Set(boolGauge(manifestInstalled))
}

// IncStreamClients increments connected stream clients
func (m *Metrics) IncStreamClients() {
	m.StreamClients.Inc()
}

// DecStreamClients decrements connected stream clients
func (m *Metrics) DecStreamClients() {
	m.StreamClients.Dec()
}

// IncStreamMessages counts one snapshot delivered to a client
func (m *Metrics) IncStreamMessages() {
	m.StreamMessages.Inc()
}

func boolGauge(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
