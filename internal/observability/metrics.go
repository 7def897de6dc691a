package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes recorded for backend requests.
const (
	OutcomeSuccess      = "success"
	OutcomeHTTPError    = "http_error"
	OutcomeNetworkError = "network_error"
	OutcomeDecodeError  = "decode_error"
)

var (
	backendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "octofit_dashboard",
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "Requests issued to the fitness REST backend by method and outcome.",
	}, []string{"method", "outcome"})
	backendLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "octofit_dashboard",
		Subsystem: "backend",
		Name:      "request_duration_seconds",
		Help:      "Latency of requests to the fitness REST backend.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
	viewsMounted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "octofit_dashboard",
		Subsystem: "views",
		Name:      "mounted_total",
		Help:      "Views mounted per resource.",
	}, []string{"resource"})
	viewsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "octofit_dashboard",
		Subsystem: "views",
		Name:      "active",
		Help:      "Mounted views not yet reaped.",
	})
)

func init() {
	prometheus.MustRegister(backendRequests, backendLatency, viewsMounted, viewsActive)
}

// RecordBackendRequest counts one backend request and observes its latency.
func RecordBackendRequest(method, outcome string, elapsed time.Duration) {
	backendRequests.WithLabelValues(method, outcome).Inc()
	backendLatency.WithLabelValues(method).Observe(elapsed.Seconds())
}

// RecordViewMounted counts a mount of resource.
func RecordViewMounted(resource string) {
	viewsMounted.WithLabelValues(resource).Inc()
}

// SetActiveViews publishes the number of live views.
func SetActiveViews(n int) {
	viewsActive.Set(float64(n))
}
