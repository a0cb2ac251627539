package observability

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "thumbkit"

// Prometheus records hook events as Prometheus metrics. It implements
// [PipelineHooks], [CacheHooks] and [HTTPHooks].
type Prometheus struct {
	composeDuration *prometheus.HistogramVec
	composeNodes    prometheus.Histogram
	renderDuration  *prometheus.HistogramVec
	stageErrors     *prometheus.CounterVec

	cacheEvents *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec

	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	requestsInFlight prometheus.Gauge
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		composeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "compose_duration_seconds",
			Help:      "Time spent composing scene trees.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"revision"}),
		composeNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "scene_nodes",
			Help:      "Number of nodes per composed scene.",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 8),
		}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering artifacts.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"formats"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "errors_total",
			Help:      "Pipeline stage failures.",
		}, []string{"stage"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Cache hits, misses and writes.",
		}, []string{"key_type", "event"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache.",
		}, []string{"key_type"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served.",
		}, []string{"method", "route", "status"}),
		requestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "HTTP requests currently being served.",
		}),
	}
	reg.MustRegister(
		p.composeDuration, p.composeNodes, p.renderDuration, p.stageErrors,
		p.cacheEvents, p.cacheBytes,
		p.requestDuration, p.requestTotal, p.requestsInFlight,
	)
	return p
}

func (p *Prometheus) OnComposeStart(context.Context, string) {}

func (p *Prometheus) OnComposeComplete(_ context.Context, revision string, nodeCount int, d time.Duration, err error) {
	if err != nil {
		p.stageErrors.WithLabelValues("compose").Inc()
		return
	}
	p.composeDuration.WithLabelValues(revision).Observe(d.Seconds())
	p.composeNodes.Observe(float64(nodeCount))
}

func (p *Prometheus) OnRenderStart(context.Context, []string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		p.stageErrors.WithLabelValues("render").Inc()
		return
	}
	p.renderDuration.WithLabelValues(formatsLabel(formats)).Observe(d.Seconds())
}

func formatsLabel(formats []string) string { return strings.Join(formats, ",") }

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheEvents.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string) {
	p.requestsInFlight.Inc()
}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	p.requestsInFlight.Dec()
	labels := prometheus.Labels{"method": method, "route": route, "status": strconv.Itoa(status)}
	p.requestDuration.With(labels).Observe(d.Seconds())
	p.requestTotal.With(labels).Inc()
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
)
