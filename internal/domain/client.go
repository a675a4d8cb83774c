package domain

import (
	"fmt"
	"strings"
	"time"
)

// ClientStatus описывает состояние учётной записи клиента.
type ClientStatus string

const (
	// ClientStatusActive — клиент может создавать заказы.
	ClientStatusActive ClientStatus = "active"
	// ClientStatusInactive — клиент заблокирован для новых заказов.
	ClientStatusInactive ClientStatus = "inactive"
)

// Client — запись клиента в бэк-офисе.
type Client struct {
	ID   int64
	Name string
	// CPF — натуральный ключ клиента (11 цифр), уникален в пределах системы.
	CPF       string
	Status    ClientStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive сообщает, активен ли клиент.
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}

// ParseClientStatus разбирает статус клиента из внешнего представления без учёта регистра.
func ParseClientStatus(raw string) (ClientStatus, error) {
	switch ClientStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case ClientStatusActive:
		return ClientStatusActive, nil
	case ClientStatusInactive:
		return ClientStatusInactive, nil
	default:
		return "", fmt.Errorf("unknown client status: %q", raw)
	}
}
