// Package metrics defines the Prometheus collectors exported on /metrics.
// A nil *Metrics is valid and records nothing, which keeps unit tests free of
// registry setup.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "facturacion"

type Metrics struct {
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	documentos       *prometheus.CounterVec
	reconciliaciones *prometheus.CounterVec
	jobs             *prometheus.CounterVec
}

// New builds the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		documentos: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documentos_total",
			Help:      "Invoice and purchase order mutations.",
		}, []string{"documento", "operacion"}),
		reconciliaciones: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliaciones_total",
			Help:      "Party reconciliation outcomes during document assembly.",
		}, []string{"parte", "accion"}),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Background jobs processed by type and result.",
		}, []string{"tipo", "resultado"}),
	}
	reg.MustRegister(m.httpRequests, m.httpDuration, m.documentos, m.reconciliaciones, m.jobs)
	return m
}

func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) Documento(documento, operacion string) {
	if m == nil {
		return
	}
	m.documentos.WithLabelValues(documento, operacion).Inc()
}

func (m *Metrics) Reconciliacion(parte, accion string) {
	if m == nil {
		return
	}
	m.reconciliaciones.WithLabelValues(parte, accion).Inc()
}

func (m *Metrics) Job(tipo, resultado string) {
	if m == nil {
		return
	}
	m.jobs.WithLabelValues(tipo, resultado).Inc()
}
