package client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	retries  prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "edcclient",
			Name:      "requests_total",
			Help:      "Management API requests by resource, method and status code.",
		}, []string{"resource", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "edcclient",
			Name:      "request_duration_seconds",
			Help:      "Management API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource", "method"}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "edcclient",
			Name:      "retries_total",
			Help:      "Management API requests repeated after a transient failure.",
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.retries)
	return m
}

// observe records one attempt. code is 0 when no response arrived.
func (m *metrics) observe(resource, method string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	m.requests.WithLabelValues(resource, method, label).Inc()
	m.duration.WithLabelValues(resource, method).Observe(elapsed.Seconds())
}

func (m *metrics) retried() {
	if m == nil {
		return
	}
	m.retries.Inc()
}
