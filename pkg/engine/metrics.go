package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vdom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "engine").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vdom",
		Subsystem: "engine",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the collectors shared by the instances mounted with
// WithMetrics. A nil *Metrics records nothing.
type Metrics struct {
	passes          prometheus.Counter
	passDuration    prometheus.Histogram
	passFailures    prometheus.Counter
	hostWrites      prometheus.Counter
	hostReads       prometheus.Counter
	nodesCreated    prometheus.Counter
	events          *prometheus.CounterVec
	handlerErrors   prometheus.Counter
	pendingRemovals prometheus.Gauge
}

// NewMetrics registers the engine collectors. Register once per registry
// and share the result between mounts.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}

	return &Metrics{
		passes:       counter("passes_total", "Total number of render passes"),
		passFailures: counter("pass_failures_total", "Render passes that ended with an error"),
		hostWrites:   counter("host_writes_total", "Mutations applied to host trees"),
		hostReads:    counter("host_reads_total", "Host tree navigation steps"),
		nodesCreated: counter("nodes_created_total", "Host nodes created"),
		handlerErrors: counter("handler_errors_total",
			"Event handlers that returned an error other than not-handled"),

		passDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Render pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_dispatched_total",
			Help:        "Delegated events dispatched, by type and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "status"}),

		pendingRemovals: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pending_removals",
			Help:        "Elements kept in the host while their removal completes",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) observePass(s PassStats, err error) {
	if m == nil {
		return
	}
	m.passes.Inc()
	m.passDuration.Observe(s.Duration.Seconds())
	m.hostWrites.Add(float64(s.Writes))
	m.hostReads.Add(float64(s.Reads))
	m.nodesCreated.Add(float64(s.Created))
	if err != nil {
		m.passFailures.Inc()
	}
}

func (m *Metrics) observeEvent(eventType, status string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(eventType, status).Inc()
}

func (m *Metrics) handlerError() {
	if m == nil {
		return
	}
	m.handlerErrors.Inc()
}

func (m *Metrics) pending(delta float64) {
	if m == nil {
		return
	}
	m.pendingRemovals.Add(delta)
}

// PassStats describes one render pass.
type PassStats struct {
	Writes   int           // host mutations
	Reads    int           // host navigation steps
	Created  int           // host nodes created
	Duration time.Duration // wall time
}

// Stats summarizes an instance's activity.
type Stats struct {
	Passes   int
	Failures int
	Events   int
	Last     PassStats
}
