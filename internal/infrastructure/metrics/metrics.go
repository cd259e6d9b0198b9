// Package metrics exposes Prometheus collectors for the HTTP surface and the
// participation use cases.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"runclub/internal/domain"
	"runclub/internal/ports/output"
)

var _ output.Metrics = (*Recorder)(nil)

// Recorder owns a private registry so tests can build as many as they need.
type Recorder struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	participation *prometheus.CounterVec
	feedLoads     *prometheus.CounterVec
	feedSize      prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "runclub",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "runclub",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		participation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "runclub",
			Name:      "participation_changes_total",
			Help:      "Join and leave operations by result.",
		}, []string{"op", "result"}),
		feedLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "runclub",
			Name:      "feed_loads_total",
			Help:      "Upcoming feed loads by result.",
		}, []string{"result"}),
		feedSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "runclub",
			Name:      "feed_size",
			Help:      "Number of events in the last loaded feed.",
		}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requests, r.latency, r.participation, r.feedLoads, r.feedSize,
	)
	return r
}

// result maps an error to a low-cardinality label value.
func result(err error) string {
	if err == nil {
		return "ok"
	}
	if code := domain.Code(err); code != "" {
		return code
	}
	return "error"
}

func (r *Recorder) ParticipationChanged(op string, err error) {
	r.participation.WithLabelValues(op, result(err)).Inc()
}

func (r *Recorder) FeedLoaded(count int, err error) {
	r.feedLoads.WithLabelValues(result(err)).Inc()
	if err == nil {
		r.feedSize.Set(float64(count))
	}
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Middleware records request counts and latency per matched route.
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		r.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		r.latency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
