package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the service exports. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// Request metrics
	RequestDurationHistogram *prometheus.HistogramVec
	APIRequestCounter        *prometheus.CounterVec
	APIErrorCounter          *prometheus.CounterVec

	// Database operation metrics
	DBOperationHistogram *prometheus.HistogramVec

	// Media store metrics
	MediaOperationsCounter *prometheus.CounterVec
	CompensationCounter    *prometheus.CounterVec

	// Record metrics
	RecordOperationsCounter *prometheus.CounterVec

	// Webhook metrics
	LeadsIngestedCounter *prometheus.CounterVec

	// Cache metrics
	CacheLookupsCounter *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers all collectors on reg using prefix as namespace.
// Passing nil registers on the default prometheus registry.
func NewMetrics(prefix string, reg prometheus.Registerer) *Metrics {
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	} else if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}
	factory := promauto.With(reg)

	return &Metrics{
		RequestDurationHistogram: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: prefix,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		APIRequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: prefix,
				Name:      "api_requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "path"},
		),
		APIErrorCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: prefix,
				Name:      "api_errors_total",
				Help:      "Total number of API errors",
			},
			[]string{"method", "path", "status"},
		),
		DBOperationHistogram: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: prefix,
				Name:      "db_operation_duration_seconds",
				Help:      "Duration of database operations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		MediaOperationsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: prefix,
				Name:      "media_operations_total",
				Help:      "Total number of media store uploads and deletes by result",
			},
			[]string{"operation", "result"},
		),
		CompensationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: prefix,
				Name:      "media_compensations_total",
				Help:      "Total number of compensating media deletes by reason and result",
			},
			[]string{"reason", "result"},
		),
		RecordOperationsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: prefix,
				Name:      "record_operations_total",
				Help:      "Total number of trainer and testimonial operations",
			},
			[]string{"kind", "operation", "outcome"},
		),
		LeadsIngestedCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: prefix,
				Name:      "leads_ingested_total",
				Help:      "Total number of inbound WhatsApp messages handled by outcome",
			},
			[]string{"outcome"},
		),
		CacheLookupsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: prefix,
				Name:      "cache_lookups_total",
				Help:      "Total number of list cache lookups",
			},
			[]string{"key", "result"},
		),
		gatherer: gatherer,
	}
}

// Middleware tracks request metrics
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}

			start := time.Now()

			m.APIRequestCounter.With(prometheus.Labels{
				"method": c.Request().Method,
				"path":   c.Path(),
			}).Inc()

			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			statusStr := strconv.Itoa(status)

			m.RequestDurationHistogram.With(prometheus.Labels{
				"method": c.Request().Method,
				"path":   c.Path(),
				"status": statusStr,
			}).Observe(time.Since(start).Seconds())

			if status >= 400 {
				m.APIErrorCounter.With(prometheus.Labels{
					"method": c.Request().Method,
					"path":   c.Path(),
					"status": statusStr,
				}).Inc()
			}

			return err
		}
	}
}

// Handler returns the HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// TrackDBOperation returns a function that tracks database operation duration
func (m *Metrics) TrackDBOperation(operation string) func(time.Time) {
	return func(startTime time.Time) {
		if m == nil {
			return
		}
		m.DBOperationHistogram.With(prometheus.Labels{
			"operation": operation,
		}).Observe(time.Since(startTime).Seconds())
	}
}

// RecordMediaOperation counts a media store upload or delete
func (m *Metrics) RecordMediaOperation(operation string, ok bool) {
	if m == nil {
		return
	}
	m.MediaOperationsCounter.WithLabelValues(operation, result(ok)).Inc()
}

// RecordCompensation counts a compensating delete attempt
func (m *Metrics) RecordCompensation(reason string, ok bool) {
	if m == nil {
		return
	}
	m.CompensationCounter.WithLabelValues(reason, result(ok)).Inc()
}

// RecordOperation counts a lifecycle operation on a record kind
func (m *Metrics) RecordOperation(kind, operation, outcome string) {
	if m == nil {
		return
	}
	m.RecordOperationsCounter.WithLabelValues(kind, operation, outcome).Inc()
}

// RecordLead counts an inbound message by outcome
func (m *Metrics) RecordLead(outcome string) {
	if m == nil {
		return
	}
	m.LeadsIngestedCounter.WithLabelValues(outcome).Inc()
}

// RecordCacheLookup counts a list cache hit or miss
func (m *Metrics) RecordCacheLookup(key string, hit bool) {
	if m == nil {
		return
	}
	r := "miss"
	if hit {
		r = "hit"
	}
	m.CacheLookupsCounter.WithLabelValues(key, r).Inc()
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
