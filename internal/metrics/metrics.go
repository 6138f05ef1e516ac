package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline operation labels
const (
	OperationSearch       = "search"
	OperationListEpisodes = "list_episodes"
	OperationEpisodeRange = "episode_range"
	OperationResolveVideo = "resolve_video"
)

// Status labels
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Pipeline metrics
var (
	PipelineRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_requests_total",
			Help: "Total number of pipeline operations by operation and outcome.",
		},
		[]string{"operation", "status"},
	)

	PipelineDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_duration_seconds",
			Help:    "Duration of pipeline operations, including every origin round trip.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	SourceFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_fetches_total",
			Help: "Total number of video source URL resolutions.",
		},
		[]string{"status"},
	)

	OriginRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "origin_requests_total",
			Help: "Total number of GET requests sent to the origin, by HTTP status code (0 for transport failures).",
		},
		[]string{"code"},
	)
)

func init() {
	prometheus.MustRegister(
		PipelineRequestsTotal,
		PipelineDurationSeconds,
		SourceFetchesTotal,
		OriginRequestsTotal,
	)
}

// ObserveOperation records the outcome of one pipeline operation.
func ObserveOperation(operation string, seconds float64, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	PipelineRequestsTotal.WithLabelValues(operation, status).Inc()
	PipelineDurationSeconds.WithLabelValues(operation).Observe(seconds)
}
