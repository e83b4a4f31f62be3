// Package metrics provides Prometheus metrics for the combine assessment service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Assessment metrics
	assessments     *prometheus.CounterVec
	scores          *prometheus.CounterVec
	recommendations *prometheus.CounterVec
	assessmentError *prometheus.CounterVec
	parseFailures   prometheus.Counter
	scoringLatency  prometheus.Histogram
	athletesTracked prometheus.Gauge

	// Batch intake
	batchSubmissions    prometheus.Counter
	submissionDuplicate prometheus.Counter

	// Queue and workers
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueue       prometheus.Counter
	queueDequeue       prometheus.Counter
	queueEnqueueErrors prometheus.Counter
	workerCount        prometheus.Gauge
	workerLatency      prometheus.Histogram
	workerErrors       prometheus.Counter

	// Store snapshot
	snapshotDuration *prometheus.HistogramVec
	snapshotRecords  prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// Runtime
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // shared registry served at /metrics

var globalManager *Manager //nolint:gochecknoglobals // package-level Record* helpers

func init() { //nolint:gochecknoinits // global manager must exist before first Record* call
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a Manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "combine",
		subsystem:        "assessment",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		Buckets: m.histogramBuckets,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		Buckets: m.histogramBuckets,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.assessments = m.counterVec("assessments_total", "Assessments scored by session kind", "kind")
	m.scores = m.counterVec("scores_total", "Per-test tier outcomes", "test", "category")
	m.recommendations = m.counterVec("recommendations_total", "Primary training focus chosen", "sport", "primary")
	m.assessmentError = m.counterVec("assessment_errors_total", "Rejected assessments by reason", "reason")
	m.parseFailures = m.counter("time_parse_failures_total", "1km times that could not be parsed")
	m.scoringLatency = m.histogram("scoring_latency_milliseconds", "Time to score and recommend one assessment")
	m.athletesTracked = m.gauge("athletes_tracked", "Athletes with at least a baseline")

	m.batchSubmissions = m.counter("batch_submissions_total", "Submissions accepted through the batch endpoint")
	m.submissionDuplicate = m.counter("submissions_duplicate_total", "Batch submissions dropped as already seen")

	m.queueSize = m.gauge("queue_size", "Submissions waiting in the queue")
	m.queueCapacity = m.gauge("queue_capacity", "Queue capacity")
	m.queueEnqueue = m.counter("queue_enqueue_total", "Submissions enqueued")
	m.queueDequeue = m.counter("queue_dequeue_total", "Submissions dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Enqueue attempts rejected")
	m.workerCount = m.gauge("worker_count", "Running assessment workers")
	m.workerLatency = m.histogram("worker_processing_latency_milliseconds", "Worker time per submission")
	m.workerErrors = m.counter("worker_errors_total", "Submissions a worker failed to assess")

	m.snapshotDuration = m.histogramVec("snapshot_duration_milliseconds", "Store snapshot save/restore duration", "op")
	m.snapshotRecords = m.gauge("snapshot_records", "Athletes in the last snapshot written or read")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration",
		"endpoint", "method", "status_code")
	m.httpErrors = m.counterVec("http_errors_total", "HTTP error responses by type", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes in use")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
}

// RecordAssessment counts one scored assessment of kind (baseline/retest).
func RecordAssessment(kind string) {
	globalManager.assessments.WithLabelValues(kind).Inc()
}

// RecordScore counts one test outcome.
func RecordScore(test, category string) {
	globalManager.scores.WithLabelValues(test, category).Inc()
}

// RecordRecommendation counts the primary focus picked for a sport.
func RecordRecommendation(sport, primary string) {
	globalManager.recommendations.WithLabelValues(sport, primary).Inc()
}

// RecordAssessmentError counts a rejected assessment.
func RecordAssessmentError(reason string) {
	globalManager.assessmentError.WithLabelValues(reason).Inc()
}

func RecordParseFailure() {
	globalManager.parseFailures.Inc()
}

// RecordScoringLatency observes scoring time in milliseconds.
func RecordScoringLatency(latencyMs float64) {
	globalManager.scoringLatency.Observe(latencyMs)
}

func UpdateAthletesTracked(count int) {
	globalManager.athletesTracked.Set(float64(count))
}

func RecordBatchSubmission() {
	globalManager.batchSubmissions.Inc()
}

func RecordSubmissionDuplicate() {
	globalManager.submissionDuplicate.Inc()
}

// UpdateQueueSize sets the current queue backlog.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

func RecordQueueEnqueue() {
	globalManager.queueEnqueue.Inc()
}

func RecordQueueDequeue() {
	globalManager.queueDequeue.Inc()
}

func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// UpdateWorkerCount sets the running worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerProcessingLatency observes one submission's processing time.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerLatency.Observe(latencyMs)
}

func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordSnapshot observes a snapshot op ("save" or "restore").
func RecordSnapshot(op string, durationMs float64, records int) {
	globalManager.snapshotDuration.WithLabelValues(op).Observe(durationMs)
	globalManager.snapshotRecords.Set(float64(records))
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes HTTP latency in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordHTTPError counts an error response classified by type
// (client_error, not_found, rate_limit, server_error).
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the registry served at /metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
