package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	classifiedTotal    *prometheus.CounterVec
	catalogLookupTotal *prometheus.CounterVec
	libraryAddsTotal   *prometheus.CounterVec
	librarySize        prometheus.Gauge
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "elib",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "elib",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "elib",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	classifiedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "elib",
			Subsystem: "classify",
			Name:      "documents_total",
			Help:      "Total classified documents by genre source.",
		},
		[]string{"service", "source"},
	)
	catalogLookupTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "elib",
			Subsystem: "catalog",
			Name:      "lookups_total",
			Help:      "Total external catalog lookups by outcome.",
		},
		[]string{"service", "outcome"},
	)
	libraryAddsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "elib",
			Subsystem: "library",
			Name:      "adds_total",
			Help:      "Total entries confirmed into the library.",
		},
		[]string{"service", "genre"},
	)
	librarySize := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "elib",
			Subsystem: "library",
			Name:      "entries",
			Help:      "Current number of entries in the session library.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		classifiedTotal,
		catalogLookupTotal,
		libraryAddsTotal,
		librarySize,
	)

	return &HTTPServerMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		classifiedTotal:    classifiedTotal,
		catalogLookupTotal: catalogLookupTotal,
		libraryAddsTotal:   libraryAddsTotal,
		librarySize:        librarySize,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func (m *HTTPServerMetrics) RecordClassification(service, source string) {
	if source == "" {
		source = "unknown"
	}
	m.classifiedTotal.WithLabelValues(service, source).Inc()
}

func (m *HTTPServerMetrics) RecordCatalogLookup(service, outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.catalogLookupTotal.WithLabelValues(service, outcome).Inc()
}

func (m *HTTPServerMetrics) RecordLibraryAdd(service, genre string, total int) {
	if genre == "" {
		genre = "unknown"
	}
	m.libraryAddsTotal.WithLabelValues(service, genre).Inc()
	m.librarySize.Set(float64(total))
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
