// Package metrics exposes Prometheus collectors for the HTTP edge and the
// recommendation engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "plantmatch"

// Recorder owns PlantMatch's collectors. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	gatherer prometheus.Gatherer

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	rateLimited   prometheus.Counter
	requests      *prometheus.CounterVec
	results       prometheus.Histogram
	bandPlacement *prometheus.CounterVec
	filterFields  *prometheus.CounterVec
}

// New registers the collectors with reg. Pass prometheus.NewRegistry() in
// tests to keep them isolated.
func New(reg *prometheus.Registry) *Recorder {
	r := &Recorder{
		gatherer: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recommend",
			Name:      "requests_total",
			Help:      "Recommendation requests by whether any filter was active.",
		}, []string{"filtered"}),
		results: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "recommend",
			Name:      "results",
			Help:      "Number of plants returned per recommendation request.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		bandPlacement: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recommend",
			Name:      "band_placements_total",
			Help:      "Plants placed in each match band.",
		}, []string{"band"}),
		filterFields: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recommend",
			Name:      "filter_fields_total",
			Help:      "How often each filter field is set.",
		}, []string{"field"}),
	}

	reg.MustRegister(
		r.httpRequests, r.httpDuration, r.rateLimited,
		r.requests, r.results, r.bandPlacement, r.filterFields,
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

// ObserveHTTP records one served request.
func (r *Recorder) ObserveHTTP(route, method string, code int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	r.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// RateLimited records a rejected request.
func (r *Recorder) RateLimited() {
	if r == nil {
		return
	}
	r.rateLimited.Inc()
}

// ObserveRecommendation records one recommendation request. fields are the
// names of the active filter fields; bands maps band key to member count.
func (r *Recorder) ObserveRecommendation(fields []string, returned int, bands map[string]int) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(strconv.FormatBool(len(fields) > 0)).Inc()
	r.results.Observe(float64(returned))
	for _, f := range fields {
		r.filterFields.WithLabelValues(f).Inc()
	}
	for band, n := range bands {
		if n > 0 {
			r.bandPlacement.WithLabelValues(band).Add(float64(n))
		}
	}
}
