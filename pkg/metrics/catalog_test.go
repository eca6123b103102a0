package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCatalogMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCatalogMetrics(reg)
	metrics.IncWrite(OperationCreate)
	metrics.IncWrite(OperationCreate)
	metrics.IncWrite("")
	metrics.IncValidationFailure(OperationUpdate)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "catalog_bookinstance_writes_total", "operation", OperationCreate); err != nil {
		t.Fatalf("fetch writes: %v", err)
	} else if got != 2 {
		t.Fatalf("expected writes=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "catalog_bookinstance_writes_total", "operation", "unknown"); err != nil {
		t.Fatalf("fetch unlabelled writes: %v", err)
	} else if got != 1 {
		t.Fatalf("expected unknown writes=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "catalog_bookinstance_validation_failures_total", "operation", OperationUpdate); err != nil {
		t.Fatalf("fetch validation failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected validation failures=1, got %f", got)
	}
}

func TestCatalogMetricsNilSafe(t *testing.T) {
	var metrics *CatalogMetrics
	metrics.IncWrite(OperationDelete)
	metrics.IncValidationFailure(OperationCreate)

	NewCatalogMetrics(nil).IncWrite(OperationDelete)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
