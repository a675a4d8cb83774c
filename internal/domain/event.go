package domain

import "time"

// EventType определяет тип доменного события заказа.
type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventOrderItemAdded     EventType = "order.item_added"
	EventOrderItemRemoved   EventType = "order.item_removed"
	EventOrderStatusChanged EventType = "order.status_changed"
	EventOrderDeleted       EventType = "order.deleted"
)

// Event — событие жизненного цикла заказа, накопленное агрегатом.
// Агрегат только записывает события; публикацией занимается сервисный слой
// через transactional outbox, поэтому внутри агрегата нет ни логирования,
// ни обращений к брокеру.
type Event struct {
	Type     EventType
	Occurred time.Time
	// Fields — полезная нагрузка события; сериализуется в JSON при постановке в outbox.
	Fields map[string]any
}
