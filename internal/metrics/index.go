package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/kailas-cloud/kbindex/internal/domain"
)

// Recorder holds the Prometheus metrics of a single run on its own registry.
type Recorder struct {
	registry *prometheus.Registry
	index    string

	createTotal    *prometheus.CounterVec
	createDuration prometheus.Histogram

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewRecorder creates a Recorder for the named index and registers its metrics.
func NewRecorder(index string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		index:    index,
		createTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kbindex",
				Name:      "index_create_total",
				Help:      "Index creation attempts by outcome",
			},
			[]string{"outcome"},
		),
		createDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "kbindex",
				Name:      "index_create_duration_seconds",
				Help:      "Index creation duration in seconds, credential resolution included",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kbindex",
				Name:      "http_requests_total",
				Help:      "Total number of outbound HTTP requests",
			},
			[]string{"method", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "kbindex",
				Name:      "http_request_duration_seconds",
				Help:      "Outbound HTTP request duration in seconds",
				Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "status"},
		),
	}

	r.registry.MustRegister(r.createTotal, r.createDuration, r.httpRequestsTotal, r.httpRequestDuration)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe implements usecase/index.Recorder.
func (r *Recorder) Observe(outcome domain.Outcome, duration time.Duration) {
	r.createTotal.WithLabelValues(string(outcome)).Inc()
	r.createDuration.Observe(duration.Seconds())
}

// Push sends all collected metrics to a Pushgateway, grouped by job and index.
// index is a grouping label, so no collected metric may carry it.
func (r *Recorder) Push(ctx context.Context, url, job string) error {
	err := push.New(url, job).
		Gatherer(r.registry).
		Grouping("index", r.index).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
