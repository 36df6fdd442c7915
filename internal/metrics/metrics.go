// Package metrics exposes Prometheus collectors for page activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors the handlers update. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	pageRenders   *prometheus.CounterVec
	contactSubmit *prometheus.CounterVec
	skillStreams  prometheus.Gauge
	toggles       *prometheus.CounterVec
}

// New registers the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pageRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_page_renders_total",
			Help: "Rendered pages and fragments by view.",
		}, []string{"view"}),
		contactSubmit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_contact_submissions_total",
			Help: "Contact form submissions by result.",
		}, []string{"result"}),
		skillStreams: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "folio_skill_streams_active",
			Help: "Open rotating skill label streams.",
		}),
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_appearance_toggles_total",
			Help: "Appearance changes by resulting mode.",
		}, []string{"mode"}),
	}
	m.registry.MustRegister(
		m.pageRenders,
		m.contactSubmit,
		m.skillStreams,
		m.toggles,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) PageRendered(view string) {
	if m == nil {
		return
	}
	m.pageRenders.WithLabelValues(view).Inc()
}

func (m *Metrics) ContactSubmitted(result string) {
	if m == nil {
		return
	}
	m.contactSubmit.WithLabelValues(result).Inc()
}

// StreamOpened increments the active stream gauge and returns the matching
// decrement.
func (m *Metrics) StreamOpened() (closed func()) {
	if m == nil {
		return func() {}
	}
	m.skillStreams.Inc()
	return m.skillStreams.Dec
}

func (m *Metrics) AppearanceChanged(mode string) {
	if m == nil {
		return
	}
	m.toggles.WithLabelValues(mode).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
