package store

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess  = "success"
	statusError    = "error"
	statusNotFound = "not_found"
)

// Metrics holds Prometheus counters for record file operations. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	operationsTotal   *prometheus.CounterVec
	relocationsTotal  prometheus.Counter
	incompleteDeletes prometheus.Counter
	corruptFiles      prometheus.Counter
}

// NewMetrics creates the counters and registers them on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sealink_record_operations_total",
				Help: "Total number of record file operations",
			},
			[]string{"operation", "status"},
		),

		relocationsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sealink_record_relocations_total",
				Help: "Records moved into a deleted slot by swap-delete",
			},
		),

		incompleteDeletes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sealink_record_incomplete_deletes_total",
				Help: "Swap-deletes that relocated a record but failed to truncate",
			},
		),

		corruptFiles: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sealink_record_files_corrupt_total",
				Help: "Record files opened with trailing bytes past the last whole record",
			},
		),
	}
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	status := statusSuccess
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		status = statusNotFound
	default:
		status = statusError
	}
	m.operationsTotal.WithLabelValues(op, status).Inc()
}

func (m *Metrics) relocated() {
	if m == nil {
		return
	}
	m.relocationsTotal.Inc()
}

func (m *Metrics) incompleteDelete() {
	if m == nil {
		return
	}
	m.incompleteDeletes.Inc()
}

func (m *Metrics) corrupt() {
	if m == nil {
		return
	}
	m.corruptFiles.Inc()
}
