package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kgeyst.com/pictale/pkg/pictale/domain"
)

// Outcomes of a pipeline run, see OutcomeOf.
const (
	OutcomeOK             = "ok"
	OutcomeRejectedFormat = "rejected_format"
	OutcomeModelLoadError = "model_load_error"
	OutcomeInferenceError = "inference_error"
	OutcomeOther          = "other"
)

var (
	PipelineRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "pictale_pipeline_runs_total", Help: "Pipeline runs by outcome"},
		[]string{"outcome"},
	)
	InferenceLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pictale_inference_duration_seconds",
			Help:    "Model call duration by stage",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"stage", "model"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP requests by path, method and status"},
		[]string{"path", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration", Buckets: prometheus.DefBuckets},
		[]string{"path", "method"},
	)
)

func init() {
	prometheus.MustRegister(PipelineRuns, InferenceLatency, HTTPRequests, HTTPLatency)
}

// OutcomeOf classifies the result of a pipeline run.
func OutcomeOf(err error) string {
	var rejectedFormatErr *domain.RejectedFormatError
	var modelLoadErr *domain.ModelLoadError
	var inferenceErr *domain.InferenceError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &rejectedFormatErr):
		return OutcomeRejectedFormat
	case errors.As(err, &modelLoadErr):
		return OutcomeModelLoadError
	case errors.As(err, &inferenceErr):
		return OutcomeInferenceError
	default:
		return OutcomeOther
	}
}

// ObserveRun counts a finished pipeline run.
func ObserveRun(err error) {
	PipelineRuns.WithLabelValues(OutcomeOf(err)).Inc()
}

func observeInference(stage domain.Stage, model string, start time.Time) {
	InferenceLatency.WithLabelValues(string(stage), model).Observe(time.Since(start).Seconds())
}

// Handler records basic HTTP metrics (request count and latency).
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		dur := time.Since(start).Seconds()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPLatency.WithLabelValues(path, c.Request.Method).Observe(dur)
		HTTPRequests.WithLabelValues(path, c.Request.Method, fmt.Sprintf("%d", c.Writer.Status())).Inc()
	}
}

// Exposer the standard Prometheus exposition handler.
func Exposer() gin.HandlerFunc { return gin.WrapH(promhttp.Handler()) }
