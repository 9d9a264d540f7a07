package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the Prometheus instruments used across the service.
// Register once at startup and share through DI.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	aggregateOps        *prometheus.HistogramVec
	aggregateConflicts  *prometheus.CounterVec
	aggregateInvariants *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crewlearn_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crewlearn_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		aggregateOps: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crewlearn_aggregate_operation_seconds",
			Help:    "Aggregate write latency by operation and outcome.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "status"}),
		aggregateConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crewlearn_aggregate_conflicts_total",
			Help: "Aggregate writes rejected on uniqueness or concurrency conflicts.",
		}, []string{"operation"}),
		aggregateInvariants: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crewlearn_aggregate_invariant_violations_total",
			Help: "Aggregate writes rejected on cross-entity invariant violations.",
		}, []string{"operation"}),
	}
}

// Registry exposes the backing registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(dur.Seconds())
}

func (m *Metrics) ObserveAggregateOperation(operation, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.aggregateOps.WithLabelValues(operation, status).Observe(dur.Seconds())
}

func (m *Metrics) IncAggregateConflict(operation string) {
	if m == nil {
		return
	}
	m.aggregateConflicts.WithLabelValues(operation).Inc()
}

func (m *Metrics) IncAggregateInvariantViolation(operation string) {
	if m == nil {
		return
	}
	m.aggregateInvariants.WithLabelValues(operation).Inc()
}
