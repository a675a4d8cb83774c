package domain

import "time"

// OrderItem представляет одну позицию заказа.
// Позиция принадлежит ровно одному заказу и вне его не существует.
type OrderItem struct {
	ID        int64
	ProductID int64
	Quantity  int32
	// UnitPriceMinor — снимок цены товара на момент добавления позиции;
	// последующие изменения каталожной цены его не трогают.
	UnitPriceMinor int64
	SubtotalMinor  int64
	CreatedAt      time.Time
}

// Order агрегирует состояние заказа и его позиции.
// Все мутации состава и статуса проходят только через методы агрегата,
// которые держат три инварианта: сумма заказа равна сумме сабтоталов,
// состав меняется только в статусе created, статус движется только по
// разрешённым рёбрам state machine.
type Order struct {
	ID         int64
	ClientID   int64
	Status     OrderStatus
	TotalMinor int64
	Items      []OrderItem
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time

	events []Event
}

// NewOrder создаёт пустой заказ для клиента: статус created, нулевая сумма.
// Активность клиента проверяет сервисный слой до вызова конструктора.
func NewOrder(clientID int64) *Order {
	now := time.Now().UTC()
	order := &Order{
		ClientID:  clientID,
		Status:    OrderStatusCreated,
		Items:     make([]OrderItem, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
	order.record(EventOrderCreated, map[string]any{
		"client_id": clientID,
	})
	return order
}

// IsCreated сообщает, открыт ли заказ для изменения состава.
func (o *Order) IsCreated() bool {
	return o.Status == OrderStatusCreated
}

// AddItem резервирует сток товара и добавляет позицию со снимком цены.
// Дедупликации по товару нет: повторный вызов для того же товара даёт вторую позицию.
func (o *Order) AddItem(product *Product, quantity int32) error {
	if !o.IsCreated() {
		return ErrOrderNotModifiable
	}
	if quantity <= 0 {
		return ErrQuantityNotPositive
	}

	if err := product.Reserve(quantity); err != nil {
		return err
	}

	item := OrderItem{
		ProductID:      product.ID,
		Quantity:       quantity,
		UnitPriceMinor: product.PriceMinor,
		SubtotalMinor:  int64(quantity) * product.PriceMinor,
		CreatedAt:      time.Now().UTC(),
	}
	o.Items = append(o.Items, item)
	o.recalculateTotal()
	o.touch()

	o.record(EventOrderItemAdded, map[string]any{
		"product_id":       product.ID,
		"quantity":         quantity,
		"unit_price_minor": item.UnitPriceMinor,
		"subtotal_minor":   item.SubtotalMinor,
		"total_minor":      o.TotalMinor,
	})
	return nil
}

// RemoveItem возвращает сток и убирает первую позицию с данным товаром.
// Поиск — линейный скан по product id: позиций в заказе немного,
// а уникальность по товару не гарантируется.
func (o *Order) RemoveItem(product *Product) error {
	if !o.IsCreated() {
		return ErrOrderNotModifiable
	}

	idx := -1
	for i, item := range o.Items {
		if item.ProductID == product.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrItemNotInOrder
	}

	removed := o.Items[idx]
	product.Release(removed.Quantity)

	o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
	o.recalculateTotal()
	o.touch()

	o.record(EventOrderItemRemoved, map[string]any{
		"product_id":     removed.ProductID,
		"quantity":       removed.Quantity,
		"subtotal_minor": removed.SubtotalMinor,
		"total_minor":    o.TotalMinor,
	})
	return nil
}

// ChangeStatus переводит заказ в новый статус, если ребро разрешено state machine.
// Состав и сумма заказа при этом не меняются.
func (o *Order) ChangeStatus(newStatus OrderStatus) error {
	if !CanTransition(o.Status, newStatus) {
		return NewStatusTransitionError(o.Status, newStatus)
	}

	from := o.Status
	o.Status = newStatus
	o.touch()

	o.record(EventOrderStatusChanged, map[string]any{
		"from": string(from),
		"to":   string(newStatus),
	})
	return nil
}

// PullEvents отдаёт накопленные события и очищает буфер агрегата.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

// recalculateTotal пересчитывает сумму с нуля по всем позициям,
// а не инкрементально: так сумма не может разойтись с составом.
func (o *Order) recalculateTotal() {
	var total int64
	for _, item := range o.Items {
		total += item.SubtotalMinor
	}
	o.TotalMinor = total
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now().UTC()
}

func (o *Order) record(eventType EventType, fields map[string]any) {
	o.events = append(o.events, Event{
		Type:     eventType,
		Occurred: time.Now().UTC(),
		Fields:   fields,
	})
}
