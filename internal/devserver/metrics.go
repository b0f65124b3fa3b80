package devserver

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type metrics struct {
	registry     *prometheus.Registry
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	personsAdded prometheus.Counter
	rateLimited  prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "phonebook_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "phonebook_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
		personsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_persons_added_total",
			Help: "Persons created through addPerson.",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "phonebook_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter.",
		}),
	}
	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.personsAdded,
		m.rateLimited,
		collectors.NewGoCollector(),
	)
	return m
}

// middleware records request count and latency per matched route.
func (m *metrics) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}
		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		code := strconv.Itoa(c.Response().Status)
		m.requests.WithLabelValues(c.Request().Method, path, code).Inc()
		m.duration.WithLabelValues(path).Observe(time.Since(start).Seconds())
		return nil
	}
}
