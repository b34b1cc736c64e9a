// Package metrics exposes Prometheus instrumentation for the HTTP API and
// the extraction pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shahar-caura/textuml/internal/diagram"
)

// Registry holds all textuml metrics on a private Prometheus registry.
type Registry struct {
	registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	ExtractionsTotal   *prometheus.CounterVec
	ExtractionDuration prometheus.Histogram
	ClassesExtracted   prometheus.Histogram
	RelationshipsTotal *prometheus.CounterVec
	AnnotatorEnabled   prometheus.Gauge
}

// NewRegistry creates a registry with process and Go runtime collectors.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	f := promauto.With(r.registry)

	r.HTTPRequestsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textuml_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	r.HTTPRequestDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "textuml_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	r.HTTPRequestsInFlight = f.NewGauge(
		prometheus.GaugeOpts{
			Name: "textuml_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	r.ExtractionsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textuml_extractions_total",
			Help: "Extraction calls by outcome",
		},
		[]string{"outcome"},
	)
	r.ExtractionDuration = f.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "textuml_extraction_duration_seconds",
			Help:    "Time spent extracting a diagram from text",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
	)
	r.ClassesExtracted = f.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "textuml_classes_extracted",
			Help:    "Number of classes per successful extraction",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		},
	)
	r.RelationshipsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textuml_relationships_total",
			Help: "Relationships emitted by kind",
		},
		[]string{"kind"},
	)
	r.AnnotatorEnabled = f.NewGauge(
		prometheus.GaugeOpts{
			Name: "textuml_annotator_enabled",
			Help: "1 when dependency-based class detection is active",
		},
	)

	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordExtraction records the outcome of one pipeline call.
func (r *Registry) RecordExtraction(result diagram.Result, duration time.Duration) {
	r.ExtractionDuration.Observe(duration.Seconds())

	switch res := result.(type) {
	case *diagram.Success:
		r.ExtractionsTotal.WithLabelValues("success").Inc()
		r.ClassesExtracted.Observe(float64(len(res.Classes)))
		for _, rel := range res.Relationships {
			r.RelationshipsTotal.WithLabelValues(string(rel.Kind)).Inc()
		}
	case *diagram.Failure:
		r.ExtractionsTotal.WithLabelValues(string(res.Kind)).Inc()
	}
}

// TrackInFlight increments the in-flight gauge and returns its decrement.
func (r *Registry) TrackInFlight() func() {
	r.HTTPRequestsInFlight.Inc()
	return r.HTTPRequestsInFlight.Dec
}

// SetAnnotatorEnabled reports whether an annotator was loaded at startup.
func (r *Registry) SetAnnotatorEnabled(enabled bool) {
	if enabled {
		r.AnnotatorEnabled.Set(1)
	} else {
		r.AnnotatorEnabled.Set(0)
	}
}
