package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewOrderMetrics(t *testing.T) {
	metrics := newOrderMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics == nil {
		t.Fatal("newOrderMetricsWithRegisterer should not return nil")
	}

	if metrics.ordersCreated == nil {
		t.Error("ordersCreated counter should not be nil")
	}
	if metrics.ordersDeleted == nil {
		t.Error("ordersDeleted counter should not be nil")
	}
	if metrics.itemsAdded == nil {
		t.Error("itemsAdded counter should not be nil")
	}
	if metrics.itemsRemoved == nil {
		t.Error("itemsRemoved counter should not be nil")
	}
	if metrics.reserveFailed == nil {
		t.Error("reserveFailed counter should not be nil")
	}
	if metrics.versionRetries == nil {
		t.Error("versionRetries counter should not be nil")
	}
	if metrics.statusTransitions == nil {
		t.Error("statusTransitions counter vec should not be nil")
	}
	if metrics.operationDuration == nil {
		t.Error("operationDuration histogram vec should not be nil")
	}
	if metrics.openOrders == nil {
		t.Error("openOrders gauge should not be nil")
	}
}

func TestRegisterTwiceReturnsExistingCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := newOrderMetricsWithRegisterer(reg)
	second := newOrderMetricsWithRegisterer(reg)

	first.RecordOrderCreated()
	second.RecordOrderCreated()

	metric := &dto.Metric{}
	if err := first.ordersCreated.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected shared counter value 2.0, got %f", metric.Counter.GetValue())
	}
}

func TestRecordOrderCreated(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(reg)

	metrics.RecordOrderCreated()

	metric := &dto.Metric{}
	if err := metrics.ordersCreated.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1.0 {
		t.Errorf("expected counter value 1.0, got %f", metric.Counter.GetValue())
	}

	gaugeMetric := &dto.Metric{}
	if err := metrics.openOrders.Write(gaugeMetric); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if gaugeMetric.Gauge.GetValue() != 1.0 {
		t.Errorf("expected 1.0 open order, got %f", gaugeMetric.Gauge.GetValue())
	}
}

func TestRecordStatusTransitionClosesOpenOrder(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(reg)

	metrics.RecordOrderCreated()
	metrics.RecordOrderCreated()
	metrics.RecordStatusTransition("created", "paid")

	gaugeMetric := &dto.Metric{}
	if err := metrics.openOrders.Write(gaugeMetric); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if gaugeMetric.Gauge.GetValue() != 1.0 {
		t.Errorf("expected 1.0 open order after transition, got %f", gaugeMetric.Gauge.GetValue())
	}

	metrics.RecordStatusTransition("paid", "finished")

	if err := metrics.openOrders.Write(gaugeMetric); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if gaugeMetric.Gauge.GetValue() != 1.0 {
		t.Errorf("paid->finished should not touch open orders, got %f", gaugeMetric.Gauge.GetValue())
	}

	transitionMetric := &dto.Metric{}
	counter, err := metrics.statusTransitions.GetMetricWithLabelValues("created", "paid")
	if err != nil {
		t.Fatalf("failed to get transition counter: %v", err)
	}
	if err := counter.Write(transitionMetric); err != nil {
		t.Fatalf("failed to write transition metric: %v", err)
	}
	if transitionMetric.Counter.GetValue() != 1.0 {
		t.Errorf("expected 1 created->paid transition, got %f", transitionMetric.Counter.GetValue())
	}
}

func TestRecordItemCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(reg)

	metrics.RecordItemAdded()
	metrics.RecordItemAdded()
	metrics.RecordItemRemoved()
	metrics.RecordReserveFailed()
	metrics.RecordVersionConflict()

	checks := []struct {
		name    string
		counter prometheus.Counter
		want    float64
	}{
		{"itemsAdded", metrics.itemsAdded, 2.0},
		{"itemsRemoved", metrics.itemsRemoved, 1.0},
		{"reserveFailed", metrics.reserveFailed, 1.0},
		{"versionRetries", metrics.versionRetries, 1.0},
	}
	for _, check := range checks {
		metric := &dto.Metric{}
		if err := check.counter.Write(metric); err != nil {
			t.Fatalf("failed to write %s: %v", check.name, err)
		}
		if metric.Counter.GetValue() != check.want {
			t.Errorf("%s: expected %f, got %f", check.name, check.want, metric.Counter.GetValue())
		}
	}
}

func TestRecordOperationDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(reg)

	metrics.RecordOperationDuration("add_item", 50*time.Millisecond)
	metrics.RecordOperationDuration("add_item", 100*time.Millisecond)
	metrics.RecordOperationDuration("update_status", 25*time.Millisecond)

	observer, err := metrics.operationDuration.GetMetricWithLabelValues("add_item")
	if err != nil {
		t.Fatalf("failed to get histogram: %v", err)
	}

	metric := &dto.Metric{}
	if err := observer.(prometheus.Histogram).Write(metric); err != nil {
		t.Fatalf("failed to write histogram: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 2 {
		t.Errorf("expected 2 samples for add_item, got %d", metric.Histogram.GetSampleCount())
	}

	sum := metric.Histogram.GetSampleSum()
	if sum < 0.14 || sum > 0.16 {
		t.Errorf("expected sum around 0.15, got %f", sum)
	}
}
