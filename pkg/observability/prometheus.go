package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements every hook interface with Prometheus collectors.
type Prometheus struct {
	ingests        *prometheus.CounterVec
	ingestDuration prometheus.Histogram
	ingestPeople   prometheus.Gauge

	solves       *prometheus.CounterVec
	solveLatency prometheus.Histogram
	solveFlow    prometheus.Gauge
	solveCost    prometheus.Gauge
	solveRoles   prometheus.Gauge

	cacheOps   *prometheus.CounterVec
	cacheBytes *prometheus.CounterVec

	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

var (
	_ SolverHooks = (*Prometheus)(nil)
	_ CacheHooks  = (*Prometheus)(nil)
	_ HTTPHooks   = (*Prometheus)(nil)
)

// NewPrometheus creates the collectors and registers them with reg
// (prometheus.DefaultRegisterer if nil) under namespace ("dutyflow" if
// empty). It panics if a collector is already registered.
func NewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "dutyflow"
	}

	p := &Prometheus{
		ingests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "runs_total",
			Help:      "Input loads by result (ok, error).",
		}, []string{"result"}),
		ingestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "duration_seconds",
			Help:      "Time to read and parse the input files.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
		ingestPeople: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "people",
			Help:      "People in the most recent successful load.",
		}),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "solves_total",
			Help:      "Assignment solves by result (ok, error).",
		}, []string{"result"}),
		solveLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "duration_seconds",
			Help:      "Wall time of assignment solves.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
		solveFlow: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "last_flow",
			Help:      "Assignments made by the most recent solve.",
		}),
		solveCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "last_cost",
			Help:      "Total cost of the most recent solve.",
		}),
		solveRoles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "last_roles",
			Help:      "Open roles in the most recent solve.",
		}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "operations_total",
			Help:      "Cache operations by key type and outcome (hit, miss, set).",
		}, []string{"key_type", "op"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache by key type.",
		}, []string{"key_type"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "API requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "API request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		p.ingests, p.ingestDuration, p.ingestPeople,
		p.solves, p.solveLatency, p.solveFlow, p.solveCost, p.solveRoles,
		p.cacheOps, p.cacheBytes,
		p.requests, p.requestLatency,
	)
	return p
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (p *Prometheus) OnIngestComplete(_ context.Context, people, _ int, d time.Duration, err error) {
	p.ingests.WithLabelValues(result(err)).Inc()
	p.ingestDuration.Observe(d.Seconds())
	if err == nil {
		p.ingestPeople.Set(float64(people))
	}
}

func (p *Prometheus) OnSolveStart(_ context.Context, _, roles int) {
	p.solveRoles.Set(float64(roles))
}

func (p *Prometheus) OnSolveComplete(_ context.Context, flow, cost int, d time.Duration, err error) {
	p.solves.WithLabelValues(result(err)).Inc()
	p.solveLatency.Observe(d.Seconds())
	if err == nil {
		p.solveFlow.Set(float64(flow))
		p.solveCost.Set(float64(cost))
	}
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheOps.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *Prometheus) OnRequest(_ context.Context, method, route string, code int, d time.Duration) {
	p.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.requestLatency.WithLabelValues(route).Observe(d.Seconds())
}
