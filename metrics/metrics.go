// Package metrics exposes counters for generated payloads and documents.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so tests and several servers in one process do not collide.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Generated payload pairs by format
	Generations *prometheus.CounterVec

	// Payload text length by record ("personal", "medical") and format
	PayloadBytes *prometheus.HistogramVec

	// Rendered summary documents
	Documents prometheus.Counter

	// Duration of a full generate or document request
	RenderLatency *prometheus.HistogramVec

	// Failed reads or writes of the stored language preference
	LanguageStoreFailures *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Generations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "travmd_payload_generations_total",
			Help: "Total generated payload pairs by format",
		}, []string{"format"}),

		PayloadBytes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "travmd_payload_bytes",
			Help:    "Length of encoded payload text by record and format",
			Buckets: []float64{64, 128, 256, 512, 1024, 2048},
		}, []string{"record", "format"}),

		Documents: factory.NewCounter(prometheus.CounterOpts{
			Name: "travmd_documents_total",
			Help: "Total rendered summary documents",
		}),

		RenderLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "travmd_render_duration_seconds",
			Help:    "Duration of payload and document rendering by operation",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}), // operation: "generate", "document"

		LanguageStoreFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "travmd_language_store_failures_total",
			Help: "Failed language preference storage operations",
		}, []string{"operation"}), // operation: "get", "set"
	}
}

// IncrementGeneration records a generated payload pair and the length of both texts.
func (m *Metrics) IncrementGeneration(format string, personalLen, medicalLen int) {
	if m != nil {
		m.Generations.WithLabelValues(format).Inc()
		m.PayloadBytes.WithLabelValues("personal", format).Observe(float64(personalLen))
		m.PayloadBytes.WithLabelValues("medical", format).Observe(float64(medicalLen))
	}
}

func (m *Metrics) IncrementDocument() {
	if m != nil {
		m.Documents.Inc()
	}
}

func (m *Metrics) ObserveRenderLatency(operation string, d time.Duration) {
	if m != nil {
		m.RenderLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementLanguageStoreFailure(operation string) {
	if m != nil {
		m.LanguageStoreFailures.WithLabelValues(operation).Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
