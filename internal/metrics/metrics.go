package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pipelineRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_backend_pipeline_requests_total",
		Help: "Total pipeline runs by outcome",
	}, []string{"status"})

	pipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "voice_backend_pipeline_duration_seconds",
		Help:    "End-to-end pipeline duration in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 60},
	})

	stageLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "voice_backend_stage_latency_seconds",
		Help:    "Per-stage latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
	}, []string{"stage"})

	stageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_backend_stage_errors_total",
		Help: "Stage failures by stage name",
	}, []string{"stage"})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "voice_backend_active_sessions",
		Help: "Number of live conversation sessions",
	})
)

func RecordPipeline(d time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	pipelineRequests.WithLabelValues(status).Inc()
	pipelineDuration.Observe(d.Seconds())
}

func RecordStage(stage string, d time.Duration) {
	stageLatency.WithLabelValues(stage).Observe(d.Seconds())
}

func RecordStageError(stage string) {
	stageErrors.WithLabelValues(stage).Inc()
}

func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}
