package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Catalog operation labels.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// CatalogMetrics counts writes and rejected submissions for catalog
// resources. A nil *CatalogMetrics is valid and records nothing.
type CatalogMetrics struct {
	writes             *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
}

// NewCatalogMetrics registers the catalog counters on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	writes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalog",
		Name:      "bookinstance_writes_total",
		Help:      "Book instance rows written, by operation.",
	}, []string{"operation"})
	validationFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalog",
		Name:      "bookinstance_validation_failures_total",
		Help:      "Book instance submissions rejected by validation, by operation.",
	}, []string{"operation"})
	reg.MustRegister(writes, validationFailures)
	return &CatalogMetrics{
		writes:             writes,
		validationFailures: validationFailures,
	}
}

// IncWrite records a successful write for the operation.
func (m *CatalogMetrics) IncWrite(operation string) {
	if m == nil || m.writes == nil {
		return
	}
	m.writes.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncValidationFailure records a submission that was sent back to the form.
func (m *CatalogMetrics) IncValidationFailure(operation string) {
	if m == nil || m.validationFailures == nil {
		return
	}
	m.validationFailures.WithLabelValues(normalizeLabel(operation)).Inc()
}

func normalizeLabel(operation string) string {
	if operation == "" {
		return "unknown"
	}
	return operation
}
