// Package metrics exposes Prometheus counters for guest and dorm mutations
// and the audit records they produce.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/guestdesk/internal/domain"
)

const namespace = "guestdesk"

// Metrics owns a private registry so tests can create as many as they like.
type Metrics struct {
	registry     *prometheus.Registry
	mutations    *prometheus.CounterVec
	auditRecords *prometheus.CounterVec
}

// New builds a Metrics with its counters and the standard Go and process
// collectors registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Guest and dorm mutations by operation and result.",
		}, []string{"operation", "result"}),
		auditRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_records_total",
			Help:      "Audit records appended to the update log by type.",
		}, []string{"update_type"}),
	}
	m.registry.MustRegister(
		m.mutations,
		m.auditRecords,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveMutation counts one call of operation, labelled by how it ended.
func (m *Metrics) ObserveMutation(operation string, err error) {
	m.mutations.WithLabelValues(operation, Result(err)).Inc()
}

// ObserveRecords counts committed audit records by type.
func (m *Metrics) ObserveRecords(records []domain.Update) {
	for _, r := range records {
		m.auditRecords.WithLabelValues(string(r.UpdateType)).Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// MutationCount returns the counter behind one mutations_total series.
func (m *Metrics) MutationCount(operation, result string) prometheus.Counter {
	return m.mutations.WithLabelValues(operation, result)
}

// RecordCount returns the counter behind one audit_records_total series.
func (m *Metrics) RecordCount(t domain.UpdateType) prometheus.Counter {
	return m.auditRecords.WithLabelValues(string(t))
}

// Result maps an operation error onto a low-cardinality label value.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUnauthenticated):
		return "denied"
	case errors.Is(err, domain.ErrDormFull):
		return "dorm_full"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
