package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
)

type productRepository struct {
	store *Store
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{store: store}
}

func (r *productRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	q := r.store.querier(ctx)

	err := q.QueryRowContext(ctx, `
		INSERT INTO products (name, price_minor, description, quantity, status, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7)
		RETURNING id
	`,
		product.Name, product.PriceMinor, product.Description, product.Quantity,
		string(product.Status), product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	product.Version = 0

	return product, nil
}

func (r *productRepository) Get(ctx context.Context, id int64) (domain.Product, error) {
	q := r.store.querier(ctx)

	var (
		product domain.Product
		status  string
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, name, price_minor, description, quantity, status, version, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id).Scan(
		&product.ID, &product.Name, &product.PriceMinor, &product.Description,
		&product.Quantity, &status, &product.Version,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	product.Status = domain.ProductStatus(status)

	return product, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	q := r.store.querier(ctx)

	rows, err := q.QueryContext(ctx, `
		SELECT id, name, price_minor, description, quantity, status, version, created_at, updated_at
		FROM products
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var (
			product domain.Product
			status  string
		)
		if err := rows.Scan(
			&product.ID, &product.Name, &product.PriceMinor, &product.Description,
			&product.Quantity, &status, &product.Version,
			&product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		product.Status = domain.ProductStatus(status)
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func (r *productRepository) Save(ctx context.Context, product domain.Product) error {
	q := r.store.querier(ctx)

	res, err := q.ExecContext(ctx, `
		UPDATE products
		SET name = $1,
		    price_minor = $2,
		    description = $3,
		    quantity = $4,
		    status = $5,
		    version = version + 1,
		    updated_at = $6
		WHERE id = $7
		  AND version = $8
	`,
		product.Name, product.PriceMinor, product.Description, product.Quantity,
		string(product.Status), product.UpdatedAt, product.ID, product.Version,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		var id int64
		err := q.QueryRowContext(ctx, `SELECT id FROM products WHERE id = $1`, product.ID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		if err != nil {
			return fmt.Errorf("check product exists: %w", err)
		}
		return domain.ErrVersionConflict
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	q := r.store.querier(ctx)

	res, err := q.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
