package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
)

type orderRepository struct {
	store *Store
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	q := r.store.querier(ctx)

	err := q.QueryRowContext(ctx, `
		INSERT INTO orders (client_id, status, total_minor, version, created_at, updated_at)
		VALUES ($1, $2, $3, 0, $4, $5)
		RETURNING id
	`,
		order.ClientID, string(order.Status), order.TotalMinor, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}
	order.Version = 0

	for i := range order.Items {
		if err := r.insertItem(ctx, q, order.ID, &order.Items[i]); err != nil {
			return domain.Order{}, err
		}
	}

	return order, nil
}

func (r *orderRepository) Get(ctx context.Context, id int64) (domain.Order, error) {
	q := r.store.querier(ctx)

	var (
		order  domain.Order
		status string
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, client_id, status, total_minor, version, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &order.ClientID, &status, &order.TotalMinor,
		&order.Version, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}
	order.Status = domain.OrderStatus(status)

	items, err := r.loadItems(ctx, q, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items

	return order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	q := r.store.querier(ctx)

	rows, err := q.QueryContext(ctx, `
		SELECT id, client_id, status, total_minor, version, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var (
			order  domain.Order
			status string
		)
		if err := rows.Scan(
			&order.ID, &order.ClientID, &status, &order.TotalMinor,
			&order.Version, &order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		order.Status = domain.OrderStatus(status)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	for i := range orders {
		items, err := r.loadItems(ctx, q, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (r *orderRepository) Save(ctx context.Context, order domain.Order) error {
	q := r.store.querier(ctx)

	res, err := q.ExecContext(ctx, `
		UPDATE orders
		SET status = $1,
		    total_minor = $2,
		    version = version + 1,
		    updated_at = $3
		WHERE id = $4
		  AND version = $5
	`,
		string(order.Status), order.TotalMinor, order.UpdatedAt, order.ID, order.Version,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		exists, err := r.exists(ctx, q, order.ID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrOrderNotFound
		}
		return domain.ErrVersionConflict
	}

	// Состав пересохраняется целиком: позиций в заказе немного,
	// а точечный diff не стоит своей сложности.
	if _, err := q.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("clear order items: %w", err)
	}
	for i := range order.Items {
		if err := r.insertItem(ctx, q, order.ID, &order.Items[i]); err != nil {
			return err
		}
	}

	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	q := r.store.querier(ctx)

	// Позиции удаляются каскадно (FK ON DELETE CASCADE);
	// складской остаток намеренно не восстанавливается.
	res, err := q.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, r.store.querier(ctx), id)
}

func (r *orderRepository) insertItem(ctx context.Context, q querier, orderID int64, item *domain.OrderItem) error {
	if item.ID != 0 {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price_minor, subtotal_minor, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			item.ID, orderID, item.ProductID, item.Quantity,
			item.UnitPriceMinor, item.SubtotalMinor, item.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
		return nil
	}

	err := q.QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price_minor, subtotal_minor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		orderID, item.ProductID, item.Quantity,
		item.UnitPriceMinor, item.SubtotalMinor, item.CreatedAt,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

func (r *orderRepository) loadItems(ctx context.Context, q querier, orderID int64) ([]domain.OrderItem, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, product_id, quantity, unit_price_minor, subtotal_minor, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at ASC, id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.ProductID, &item.Quantity,
			&item.UnitPriceMinor, &item.SubtotalMinor, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

func (r *orderRepository) exists(ctx context.Context, q querier, orderID int64) (bool, error) {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM orders WHERE id = $1`, orderID).Scan(&id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("check order exists: %w", err)
}

var _ domain.OrderRepository = (*orderRepository)(nil)
