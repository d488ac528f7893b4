package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobboard_http_request_duration_seconds",
		Help:    "HTTP request latency by route, method and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	jobOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_job_operations_total",
		Help: "Job resource operations by outcome.",
	}, []string{"operation", "outcome"})
)

func ObserveJobOp(op, outcome string) {
	jobOperations.WithLabelValues(op, outcome).Inc()
}

func ObserveRequest(route, method string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(d.Seconds())
}
