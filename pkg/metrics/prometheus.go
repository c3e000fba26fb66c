package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values shared with callers.
const (
	MentionName     = "name"
	MentionShort    = "short"
	MentionNickname = "nickname"
	MentionNone     = "none"

	ResolutionHit  = "hit"
	ResolutionMiss = "miss"
)

// Manager owns the Prometheus collectors of a pipeline run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Extraction
	commentsProcessed prometheus.Counter
	commentsDuplicate prometheus.Counter
	commentsEmpty     prometheus.Counter
	mentionsExtracted *prometheus.CounterVec
	resolutions       *prometheus.CounterVec

	// Per-thread work
	outcomes       *prometheus.CounterVec
	threadFailures *prometheus.CounterVec
	lookbackDays   prometheus.Histogram
	workerActive   prometheus.Gauge

	stageDuration *prometheus.HistogramVec

	// Report API
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rollcall",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.commentsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "comments_processed_total",
		Help:        "Total number of comments scanned for mentions",
		ConstLabels: labels,
	})
	m.commentsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "comments_duplicate_total",
		Help:        "Total number of comments skipped because their key was already seen",
		ConstLabels: labels,
	})
	m.commentsEmpty = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "comments_empty_total",
		Help:        "Total number of comments with blank text",
		ConstLabels: labels,
	})
	m.mentionsExtracted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "mentions_extracted_total",
		Help:        "Total number of mention records by matcher kind",
		ConstLabels: labels,
	}, []string{"kind"})
	m.resolutions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "resolutions_total",
		Help:        "Total number of surface forms resolved, by result",
		ConstLabels: labels,
	}, []string{"result"})

	m.outcomes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "outcomes_total",
		Help:        "Total number of threads by game outcome",
		ConstLabels: labels,
	}, []string{"result"})
	m.threadFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "thread_failures_total",
		Help:        "Total number of threads whose processing failed, by reason",
		ConstLabels: labels,
	}, []string{"reason"})
	m.lookbackDays = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "outcome_lookback_days",
		Help:        "Days walked back from the post date before a game was found",
		Buckets:     []float64{0, 1, 2, 3, 5, 7, 14, 30, 60, 120, 240},
		ConstLabels: labels,
	})
	m.workerActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "worker_active_count",
		Help:        "Number of workers currently processing a thread",
		ConstLabels: labels,
	})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stage_duration_seconds",
		Help:        "Wall time of each pipeline stage",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"stage"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "Total number of report API requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "request_duration_milliseconds",
		Help:        "Report API request duration in milliseconds",
		Buckets:     []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordCommentProcessed increments the scanned comment counter.
func RecordCommentProcessed() {
	globalManager.commentsProcessed.Inc()
}

// RecordCommentDuplicate increments the duplicate comment counter.
func RecordCommentDuplicate() {
	globalManager.commentsDuplicate.Inc()
}

// RecordCommentEmpty increments the blank comment counter.
func RecordCommentEmpty() {
	globalManager.commentsEmpty.Inc()
}

// RecordMentions adds n mention records of the given kind.
func RecordMentions(kind string, n int) {
	if n <= 0 {
		return
	}
	globalManager.mentionsExtracted.WithLabelValues(kind).Add(float64(n))
}

// RecordResolution counts one resolver lookup.
func RecordResolution(hit bool) {
	result := ResolutionMiss
	if hit {
		result = ResolutionHit
	}
	globalManager.resolutions.WithLabelValues(result).Inc()
}

// RecordOutcome counts one thread outcome.
func RecordOutcome(result string) {
	globalManager.outcomes.WithLabelValues(result).Inc()
}

// RecordThreadFailure counts a failed thread.
func RecordThreadFailure(reason string) {
	globalManager.threadFailures.WithLabelValues(reason).Inc()
}

// RecordLookbackDays records how far the outcome search walked back.
func RecordLookbackDays(days int) {
	globalManager.lookbackDays.Observe(float64(days))
}

// UpdateWorkerActiveCount sets the number of busy workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActive.Set(float64(count))
}

// RecordStageDuration records the wall time of a pipeline stage.
func RecordStageDuration(stage string, d time.Duration) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the current metrics to path in the node exporter
// textfile format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrFlushFailed, err)
	}
	return nil
}
