package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
	"github.com/vladislavdragonenkov/orderhub/internal/storage/memory"
)

func newProduct(name string) domain.Product {
	return domain.Product{
		Name:        name,
		PriceMinor:  5000,
		Description: "test product",
		Quantity:    10,
		Status:      domain.ProductStatusActive,
	}
}

func TestProductRepository_CreateGet(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()

	created, err := repo.Create(ctx, newProduct("notebook"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned product id")
	}

	stored, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Name != "notebook" {
		t.Fatalf("expected name notebook, got %s", stored.Name)
	}
}

func TestProductRepository_SaveVersioning(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()

	created, err := repo.Create(ctx, newProduct("notebook"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	created.Quantity = 8
	if err := repo.Save(ctx, created); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	updated, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if updated.Quantity != 8 {
		t.Fatalf("expected quantity 8, got %d", updated.Quantity)
	}
	if updated.Version != created.Version+1 {
		t.Fatalf("expected version increment, got %d", updated.Version)
	}

	// Сохранение с устаревшей версией отклоняется.
	if err := repo.Save(ctx, created); !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestProductRepository_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()

	first, err := repo.Create(ctx, newProduct("a"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := repo.Create(ctx, newProduct("b")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := repo.Delete(ctx, first.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	products, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "b" {
		t.Fatalf("unexpected products after delete: %+v", products)
	}
}
