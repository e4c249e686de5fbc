package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by route and status",
}, []string{"path", "status"})

var countJobsInQueue = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "count_jobs_in_queue",
	Help: "Number of ask jobs waiting for a worker",
})

var dispatcherSignalCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "dispatcher_signal_count",
	Help: "How often the dispatcher has signaled to start worker",
})

var activeWorkerCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_worker_count",
	Help: "Number of active workers",
})

var activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_sessions",
	Help: "Number of open chat sessions",
})

var askOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ask_outcomes_total",
	Help: "Answered questions labelled by outcome",
}, []string{"outcome"})

var documentLoads = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "document_loads_total",
	Help: "Document uploads labelled by content type and result",
}, []string{"type", "result"})

const (
	OutcomeAnswered   = "answered"
	OutcomeNoDocument = "no_document"
	OutcomeFailed     = "generation_failed"
)

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementJobsInQueue() {
	countJobsInQueue.Inc()
}

func DecrementJobsInQueue() {
	countJobsInQueue.Dec()
}

func StartDispatcherSignalCount() {
	dispatcherSignalCount.Inc()
}

func IncrementActiveWorkerCount() {
	activeWorkerCount.Inc()
}
func DecrementActiveWorkerCount() {
	activeWorkerCount.Dec()
}

func IncrementActiveSessions() {
	activeSessions.Inc()
}

func DecrementActiveSessions() {
	activeSessions.Dec()
}

func CountAskOutcome(outcome string) {
	askOutcomes.WithLabelValues(outcome).Inc()
}

func CountDocumentLoad(docType string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	if docType == "" {
		docType = "unknown"
	}
	documentLoads.WithLabelValues(docType, result).Inc()
}

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "process_request_duration_seconds",
	Help:    "Total time spent processing one ask job.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 60},
}, []string{"status"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30},
}, []string{"service"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureJobMetrics(label string, timeElapsed time.Duration) {
	requestDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
