package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "terzaghi_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "terzaghi_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	calculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "terzaghi_calculations_total",
		Help: "Bearing capacity calculations by foundation shape, failure mode and outcome",
	}, []string{"shape", "mode", "outcome"})

	historyOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "terzaghi_history_operations_total",
		Help: "History workbook operations by kind and result",
	}, []string{"op", "result"})

	historyCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "terzaghi_history_cache_total",
		Help: "History list cache lookups",
	}, []string{"result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveCalculation counts one calculation. outcome is "ok", "invalid" or "error".
func ObserveCalculation(shape, mode, outcome string) {
	calculations.WithLabelValues(shape, mode, outcome).Inc()
}

func ObserveHistory(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	historyOperations.WithLabelValues(op, result).Inc()
}

func ObserveCacheLookup(hit bool) {
	if hit {
		historyCache.WithLabelValues("hit").Inc()
		return
	}
	historyCache.WithLabelValues("miss").Inc()
}
