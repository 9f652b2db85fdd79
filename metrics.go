package hxbox

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics counts registry requests. A nil *metrics records nothing.
type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// WithMetrics registers request metrics for the registry with r:
//
//	hxbox_requests_total{component, code}
//	hxbox_render_duration_seconds{component}
//
// Requests for unknown components are counted under component="".
// Panics if the metrics are already registered with r.
func WithMetrics(r prometheus.Registerer) RegistryOption {
	return func(reg *Registry) {
		m := &metrics{
			requests: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "hxbox_requests_total",
					Help: "Component requests served, by response code.",
				},
				[]string{"component", "code"},
			),
			duration: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "hxbox_render_duration_seconds",
					Help:    "Time spent decoding props and rendering a component.",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"component"},
			),
		}
		r.MustRegister(m.requests, m.duration)
		reg.metrics = m
	}
}

func (m *metrics) observe(component string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(component, strconv.Itoa(code)).Inc()
	if component != "" {
		m.duration.WithLabelValues(component).Observe(elapsed.Seconds())
	}
}
