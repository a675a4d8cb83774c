package domain

import (
	"fmt"
	"strings"
)

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusCreated — заказ создан и открыт для изменения позиций.
	OrderStatusCreated OrderStatus = "created"
	// OrderStatusPaid — заказ оплачен, состав позиций заморожен.
	OrderStatusPaid OrderStatus = "paid"
	// OrderStatusFinished — заказ исполнен; терминальный статус.
	OrderStatusFinished OrderStatus = "finished"
	// OrderStatusCanceled — заказ отменён; терминальный статус.
	OrderStatusCanceled OrderStatus = "canceled"
)

// validTransitions — единственное место, где зафиксированы допустимые переходы статусов.
// Из терминальных статусов (finished, canceled) переходов нет.
var validTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusCreated:  {OrderStatusPaid: true, OrderStatusCanceled: true},
	OrderStatusPaid:     {OrderStatusFinished: true, OrderStatusCanceled: true},
	OrderStatusFinished: {},
	OrderStatusCanceled: {},
}

// CanTransition сообщает, допустим ли переход заказа из статуса from в to.
// Функция чистая: побочных эффектов нет, self-переходы запрещены.
func CanTransition(from, to OrderStatus) bool {
	return validTransitions[from][to]
}

// ParseOrderStatus разбирает статус из внешнего представления без учёта регистра.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case OrderStatusCreated:
		return OrderStatusCreated, nil
	case OrderStatusPaid:
		return OrderStatusPaid, nil
	case OrderStatusFinished:
		return OrderStatusFinished, nil
	case OrderStatusCanceled:
		return OrderStatusCanceled, nil
	default:
		return "", fmt.Errorf("unknown order status: %q", raw)
	}
}
