package httpx

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
	cpfLength            = 11
)

// ClientRequest — тело запроса на создание/обновление клиента.
type ClientRequest struct {
	Name string `json:"name"`
	CPF  string `json:"cpf"`
}

// Validate проверяет имя и формат CPF (ровно 11 цифр).
func (r *ClientRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name must not be blank")
	}
	if len(r.Name) > maxNameLength {
		return errors.New("name is too long")
	}
	if len(r.CPF) != cpfLength {
		return errors.New("cpf must contain exactly 11 digits")
	}
	for _, c := range r.CPF {
		if !unicode.IsDigit(c) {
			return errors.New("cpf must contain only digits")
		}
	}
	return nil
}

// ProductRequest — тело запроса на создание/обновление товара.
type ProductRequest struct {
	Name        string `json:"name"`
	PriceMinor  int64  `json:"price_minor"`
	Description string `json:"description"`
	Quantity    int32  `json:"quantity"`
}

func (r *ProductRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name must not be blank")
	}
	if len(r.Name) > maxNameLength {
		return errors.New("name is too long")
	}
	if r.PriceMinor <= 0 {
		return errors.New("price must be greater than zero")
	}
	if len(r.Description) > maxDescriptionLength {
		return errors.New("description is too long")
	}
	if r.Quantity < 0 {
		return errors.New("quantity must not be negative")
	}
	return nil
}

// AddItemRequest — тело запроса на добавление позиции в заказ.
type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

func (r *AddItemRequest) Validate() error {
	if r.ProductID <= 0 {
		return errors.New("product_id must be a positive integer")
	}
	if r.Quantity <= 0 {
		return errors.New("quantity must be greater than zero")
	}
	return nil
}

// StatusRequest — тело запроса на смену статуса.
type StatusRequest struct {
	Status string `json:"status"`
}

// ClientResponse — представление клиента в API.
type ClientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CPF       string    `json:"cpf"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toClientResponse(client domain.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		CPF:       client.CPF,
		Status:    string(client.Status),
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}

// ProductResponse — представление товара в API.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	PriceMinor  int64     `json:"price_minor"`
	Description string    `json:"description"`
	Quantity    int32     `json:"quantity"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProductResponse(product domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		PriceMinor:  product.PriceMinor,
		Description: product.Description,
		Quantity:    product.Quantity,
		Status:      string(product.Status),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// OrderItemResponse — представление позиции заказа в API.
type OrderItemResponse struct {
	ID             int64     `json:"id"`
	ProductID      int64     `json:"product_id"`
	Quantity       int32     `json:"quantity"`
	UnitPriceMinor int64     `json:"unit_price_minor"`
	SubtotalMinor  int64     `json:"subtotal_minor"`
	CreatedAt      time.Time `json:"created_at"`
}

// OrderResponse — представление заказа в API.
type OrderResponse struct {
	ID         int64               `json:"id"`
	ClientID   int64               `json:"client_id"`
	Status     string              `json:"status"`
	TotalMinor int64               `json:"total_minor"`
	Items      []OrderItemResponse `json:"items"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func toOrderResponse(order domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceMinor: item.UnitPriceMinor,
			SubtotalMinor:  item.SubtotalMinor,
			CreatedAt:      item.CreatedAt,
		})
	}
	return OrderResponse{
		ID:         order.ID,
		ClientID:   order.ClientID,
		Status:     string(order.Status),
		TotalMinor: order.TotalMinor,
		Items:      items,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

func toOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}
	return out
}
