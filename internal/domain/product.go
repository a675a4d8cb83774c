package domain

import (
	"fmt"
	"strings"
	"time"
)

// ProductStatus описывает доступность товара в каталоге.
type ProductStatus string

const (
	// ProductStatusActive — товар доступен для резервирования.
	ProductStatusActive ProductStatus = "active"
	// ProductStatusInactive — товар выведен из каталога; новые резервы запрещены.
	ProductStatusInactive ProductStatus = "inactive"
)

// Product — товар каталога с учётом складского остатка.
// Quantity никогда не уходит в минус: Reserve проверяет остаток до списания.
type Product struct {
	ID   int64
	Name string
	// PriceMinor — цена за единицу в минимальных денежных единицах (центах).
	PriceMinor  int64
	Description string
	Quantity    int32
	Status      ProductStatus
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive сообщает, активен ли товар.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// Reserve списывает qty единиц под позицию заказа.
// Резервирование допускается только для активного товара и только в пределах остатка.
func (p *Product) Reserve(qty int32) error {
	if !p.IsActive() {
		return ErrProductNotActive
	}
	if qty > p.Quantity {
		return NewInsufficientStockError(p.Quantity)
	}
	p.Quantity -= qty
	return nil
}

// ParseProductStatus разбирает статус товара из внешнего представления без учёта регистра.
func ParseProductStatus(raw string) (ProductStatus, error) {
	switch ProductStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case ProductStatusActive:
		return ProductStatusActive, nil
	case ProductStatusInactive:
		return ProductStatusInactive, nil
	default:
		return "", fmt.Errorf("unknown product status: %q", raw)
	}
}

// Release возвращает qty единиц на склад.
// Возврат принимается безусловно: заказ должен разматываться,
// даже если товар успели деактивировать.
func (p *Product) Release(qty int32) {
	p.Quantity += qty
}
