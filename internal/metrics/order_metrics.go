package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики операций над заказами.
type OrderMetrics struct {
	// Счётчики операций
	ordersCreated  prometheus.Counter
	ordersDeleted  prometheus.Counter
	itemsAdded     prometheus.Counter
	itemsRemoved   prometheus.Counter
	reserveFailed  prometheus.Counter
	versionRetries prometheus.Counter

	// Переходы статусов по парам from/to
	statusTransitions *prometheus.CounterVec

	// Гистограммы времени выполнения операций
	operationDuration *prometheus.HistogramVec

	// Gauge для заказов в статусе created
	openOrders prometheus.Gauge
}

// NewOrderMetrics создаёт новый экземпляр метрик заказов.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orderhub_orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersDeleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orderhub_orders_deleted_total",
			Help: "Total number of orders deleted",
		}),
		itemsAdded: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orderhub_order_items_added_total",
			Help: "Total number of items added to orders",
		}),
		itemsRemoved: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orderhub_order_items_removed_total",
			Help: "Total number of items removed from orders",
		}),
		reserveFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orderhub_stock_reserve_failed_total",
			Help: "Total number of failed stock reservations",
		}),
		versionRetries: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orderhub_version_conflicts_total",
			Help: "Total number of optimistic lock conflicts",
		}),
		statusTransitions: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orderhub_order_status_transitions_total",
			Help: "Total number of order status transitions by from/to pair",
		}, []string{"from", "to"}),
		operationDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "orderhub_order_operation_duration_seconds",
			Help:    "Duration of order service operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
		openOrders: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "orderhub_open_orders",
			Help: "Number of orders currently in created status",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderCreated увеличивает счётчик созданных заказов.
func (m *OrderMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
	m.openOrders.Inc()
}

// RecordOrderDeleted увеличивает счётчик удалённых заказов.
func (m *OrderMetrics) RecordOrderDeleted() {
	m.ordersDeleted.Inc()
}

// RecordItemAdded увеличивает счётчик добавленных позиций.
func (m *OrderMetrics) RecordItemAdded() {
	m.itemsAdded.Inc()
}

// RecordItemRemoved увеличивает счётчик удалённых позиций.
func (m *OrderMetrics) RecordItemRemoved() {
	m.itemsRemoved.Inc()
}

// RecordReserveFailed увеличивает счётчик неудачных резервирований остатка.
func (m *OrderMetrics) RecordReserveFailed() {
	m.reserveFailed.Inc()
}

// RecordVersionConflict увеличивает счётчик конфликтов optimistic lock.
func (m *OrderMetrics) RecordVersionConflict() {
	m.versionRetries.Inc()
}

// RecordStatusTransition фиксирует переход статуса заказа.
// Заказ, покидающий статус created, перестаёт быть открытым.
func (m *OrderMetrics) RecordStatusTransition(from, to string) {
	m.statusTransitions.WithLabelValues(from, to).Inc()
	if from == "created" && to != "created" {
		m.openOrders.Dec()
	}
}

// RecordOperationDuration записывает время выполнения операции сервиса.
func (m *OrderMetrics) RecordOperationDuration(operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
