package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
)

func makeProduct() domain.Product {
	return domain.Product{
		ID:          1,
		Name:        "notebook",
		PriceMinor:  5000,
		Description: "office notebook",
		Quantity:    10,
		Status:      domain.ProductStatusActive,
	}
}

func TestProductReserve_Ok(t *testing.T) {
	product := makeProduct()
	if err := product.Reserve(4); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if product.Quantity != 6 {
		t.Fatalf("expected quantity 6, got %d", product.Quantity)
	}
}

func TestProductReserve_Inactive(t *testing.T) {
	product := makeProduct()
	product.Status = domain.ProductStatusInactive

	err := product.Reserve(1)
	if !errors.Is(err, domain.ErrProductNotActive) {
		t.Fatalf("expected ErrProductNotActive, got %v", err)
	}
	if product.Quantity != 10 {
		t.Fatalf("failed reserve must not change quantity, got %d", product.Quantity)
	}
}

func TestProductReserve_InsufficientStock(t *testing.T) {
	product := makeProduct()

	err := product.Reserve(11)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	// Ошибка несёт доступный остаток.
	if !strings.Contains(err.Error(), "available 10") {
		t.Fatalf("expected available amount in error, got %q", err.Error())
	}
	if product.Quantity != 10 {
		t.Fatalf("failed reserve must not change quantity, got %d", product.Quantity)
	}
}

func TestProductRelease_IgnoresStatus(t *testing.T) {
	product := makeProduct()
	product.Status = domain.ProductStatusInactive

	product.Release(3)
	if product.Quantity != 13 {
		t.Fatalf("expected quantity 13, got %d", product.Quantity)
	}
}
