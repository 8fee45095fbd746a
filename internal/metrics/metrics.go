// Package metrics exposes Prometheus collectors for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns the API collectors. Each instance has its own
// prometheus.Registry so tests can build as many as they like.
type Registry struct {
	reg       *prometheus.Registry
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	quizDraws *prometheus.CounterVec
	limited   prometheus.Counter
}

// New registers the collectors under namespace.
func New(namespace string) *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		quizDraws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quiz_draws_total",
			Help:      "Quiz draws by outcome.",
		}, []string{"outcome"}),
		limited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}
	r.reg.MustRegister(
		r.requests,
		r.latency,
		r.quizDraws,
		r.limited,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return r
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished request. route is the matched mux
// pattern, or "unmatched".
func (r *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveQuizDraw implements question.DrawRecorder.
func (r *Registry) ObserveQuizDraw(exhausted bool) {
	outcome := "question"
	if exhausted {
		outcome = "exhausted"
	}
	r.quizDraws.WithLabelValues(outcome).Inc()
}

// ObserveRateLimited counts a rejected request.
func (r *Registry) ObserveRateLimited() {
	r.limited.Inc()
}
