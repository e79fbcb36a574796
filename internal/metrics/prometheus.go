package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "backend"

// PrometheusRecorder implements Recorder on top of a dedicated Prometheus registry.
type PrometheusRecorder struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	usersCreated    prometheus.Counter
	usersRejected   *prometheus.CounterVec
}

// NewPrometheus creates a Recorder with its own registry, including Go runtime
// and process collectors.
func NewPrometheus() *PrometheusRecorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &PrometheusRecorder{
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "method", "code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of response latency (seconds) for HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		usersCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_created_total",
			Help:      "Total number of accepted create-user requests",
		}),
		usersRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "users_rejected_total",
				Help:      "Total number of rejected create-user requests",
			},
			[]string{"reason"},
		),
	}
}

// ObserveRequest records the request count and latency.
func (p *PrometheusRecorder) ObserveRequest(route, method string, status int, duration time.Duration) {
	p.requestsTotal.WithLabelValues(route, method, statusLabel(status)).Inc()
	p.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// IncUserCreated increments the users created counter.
func (p *PrometheusRecorder) IncUserCreated() {
	p.usersCreated.Inc()
}

// IncUserRejected increments the users rejected counter for reason.
func (p *PrometheusRecorder) IncUserRejected(reason string) {
	p.usersRejected.WithLabelValues(reason).Inc()
}

// Handler returns the exposition handler for this recorder's registry.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Gatherer exposes the underlying registry.
func (p *PrometheusRecorder) Gatherer() prometheus.Gatherer {
	return p.registry
}

func statusLabel(status int) string {
	return strconv.Itoa(status)
}
