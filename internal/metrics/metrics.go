package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "page_builder"

var (
	initOnce sync.Once

	sectionPersistTotal    *prometheus.CounterVec
	persistDurationSeconds *prometheus.HistogramVec
	orderConflictRetries   prometheus.Counter
	renderFailuresTotal    *prometheus.CounterVec
	normalizeParseFailures prometheus.Counter
	pageRenderDuration     *prometheus.HistogramVec
	httpRequestsTotal      *prometheus.CounterVec
	httpRequestDuration    *prometheus.HistogramVec
)

func initMetrics() {
	initOnce.Do(func() {
		sectionPersistTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "builder",
			Name:      "section_persist_total",
			Help:      "Section persistence calls by operation and outcome",
		}, []string{"op", "status"})

		persistDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "builder",
			Name:      "persist_duration_seconds",
			Help:      "Duration of background persistence jobs",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"})

		orderConflictRetries = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "builder",
			Name:      "order_conflict_retries_total",
			Help:      "Section creations retried after an order index conflict",
		})

		renderFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "render_failures_total",
			Help:      "Sections replaced by a placeholder or error panel",
		}, []string{"reason"})

		normalizeParseFailures = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "normalize_parse_failures_total",
			Help:      "Stored content strings that failed to parse as JSON objects",
		})

		pageRenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "page_render_duration_seconds",
			Help:      "Time spent rendering a page",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"})

		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"})

		httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"})
	})
}

// SectionPersisted counts a persistence call for op ("create", "update", ...).
func SectionPersisted(op string, err error) {
	initMetrics()
	status := "success"
	if err != nil {
		status = "failure"
	}
	sectionPersistTotal.WithLabelValues(op, status).Inc()
}

// ObservePersist records how long a background persistence job took.
func ObservePersist(op string, duration time.Duration) {
	initMetrics()
	persistDurationSeconds.WithLabelValues(op).Observe(duration.Seconds())
}

func OrderConflictRetried() {
	initMetrics()
	orderConflictRetries.Inc()
}

// RenderFailed counts a section that could not be rendered normally.
func RenderFailed(reason string) {
	initMetrics()
	renderFailuresTotal.WithLabelValues(reason).Inc()
}

func ContentParseFailed() {
	initMetrics()
	normalizeParseFailures.Inc()
}

// ObservePageRender records the duration of a full page render.
func ObservePageRender(mode string, started time.Time) {
	initMetrics()
	pageRenderDuration.WithLabelValues(mode).Observe(time.Since(started).Seconds())
}

// ObserveHTTPRequest records one served request. route is the matched
// pattern, not the raw path.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	initMetrics()
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
