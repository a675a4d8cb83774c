package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrClientNotFound возвращается, если клиент не найден в репозитории.
	ErrClientNotFound = errors.New("client not found")
	// ErrProductNotFound возвращается, если товар не найден в репозитории.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")

	// ErrClientNotActive — попытка создать заказ для неактивного клиента.
	ErrClientNotActive = errors.New("client is not active")
	// ErrProductNotActive — попытка зарезервировать сток неактивного товара.
	ErrProductNotActive = errors.New("product is not active")
	// ErrInsufficientStock — запрошенное количество превышает доступный остаток.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrOrderNotModifiable — состав позиций можно менять только в статусе created.
	ErrOrderNotModifiable = errors.New("only orders with status created can be modified")
	// ErrQuantityNotPositive — количество позиции должно быть больше нуля.
	ErrQuantityNotPositive = errors.New("quantity must be greater than zero")
	// ErrItemNotInOrder — в заказе нет позиции с указанным товаром.
	ErrItemNotInOrder = errors.New("product not found in order")
	// ErrStatusTransition — запрошенный переход статуса запрещён state machine.
	ErrStatusTransition = errors.New("illegal order status transition")

	// ErrCPFAlreadyRegistered — CPF клиента уже занят другой записью.
	ErrCPFAlreadyRegistered = errors.New("cpf already registered")
	// ErrVersionConflict сигнализирует о конфликте версий при сохранении агрегата.
	ErrVersionConflict = errors.New("version conflict")

	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// NewInsufficientStockError оборачивает ErrInsufficientStock, сохраняя доступный остаток.
func NewInsufficientStockError(available int32) error {
	return fmt.Errorf("%w: available %d", ErrInsufficientStock, available)
}

// NewStatusTransitionError оборачивает ErrStatusTransition, называя оба статуса.
func NewStatusTransitionError(from, to OrderStatus) error {
	return fmt.Errorf("%w: cannot change order status from %s to %s", ErrStatusTransition, from, to)
}

// IsNotFound сообщает, относится ли ошибка к отсутствующему ресурсу.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}

// IsBusinessRule сообщает, является ли ошибка нарушением бизнес-правила.
// Такие ошибки ожидаемы, исправимы вызывающей стороной и не ретраятся автоматически.
func IsBusinessRule(err error) bool {
	return errors.Is(err, ErrClientNotActive) ||
		errors.Is(err, ErrProductNotActive) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrOrderNotModifiable) ||
		errors.Is(err, ErrQuantityNotPositive) ||
		errors.Is(err, ErrItemNotInOrder) ||
		errors.Is(err, ErrStatusTransition)
}

// IsConflict сообщает, является ли ошибка конфликтом (натуральный ключ, версии).
func IsConflict(err error) bool {
	return errors.Is(err, ErrCPFAlreadyRegistered) ||
		errors.Is(err, ErrVersionConflict)
}
