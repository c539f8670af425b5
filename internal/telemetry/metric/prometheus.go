package metric

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hoard"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Connection metrics
	ConnectionsAccepted prometheus.Counter
	ConnectionsActive   prometheus.Gauge

	// Command metrics
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	RequestBytes    prometheus.Histogram
}

var (
	globalRegistry *Registry
	globalOnce     sync.Once
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// NewRegistry creates a registry with Go and process collectors installed.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,
		ConnectionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_accepted_total",
			Help:      "Total number of accepted client connections.",
		}),
		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Number of connections currently being served.",
		}),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Total number of commands by name and result.",
		}, []string{"command", "result"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Command handling latency.",
			Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		}, []string{"command"}),
		RequestBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_bytes",
			Help:      "Size of raw requests read from clients.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 9),
		}),
	}

	reg.MustRegister(
		r.ConnectionsAccepted,
		r.ConnectionsActive,
		r.CommandsTotal,
		r.CommandDuration,
		r.RequestBytes,
	)
	return r
}

// Register adds an extra collector, such as a StoreCollector.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.registry.Register(c)
}

// Gatherer exposes the underlying registry for tests and custom handlers.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler serving this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		Registry: r.registry,
	})
}

// Handler returns an HTTP handler for the global registry.
func Handler() http.Handler {
	return Global().Handler()
}

// ConnOpened records an accepted connection.
func (r *Registry) ConnOpened() {
	r.ConnectionsAccepted.Inc()
	r.ConnectionsActive.Inc()
}

// ConnClosed records a finished connection.
func (r *Registry) ConnClosed() {
	r.ConnectionsActive.Dec()
}

// RecordCommand counts one handled command.
func (r *Registry) RecordCommand(command, result string, elapsed time.Duration) {
	r.CommandsTotal.WithLabelValues(command, result).Inc()
	r.CommandDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// ObserveRequestBytes records the size of a raw request.
func (r *Registry) ObserveRequestBytes(n int) {
	r.RequestBytes.Observe(float64(n))
}
