package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
)

const pgUniqueViolation = "23505"

type clientRepository struct {
	store *Store
}

// NewClientRepository создаёт PostgreSQL-реализацию ClientRepository.
func NewClientRepository(store *Store) domain.ClientRepository {
	return &clientRepository{store: store}
}

func (r *clientRepository) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	q := r.store.querier(ctx)

	err := q.QueryRowContext(ctx, `
		INSERT INTO clients (name, cpf, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		client.Name, client.CPF, string(client.Status), client.CreatedAt, client.UpdatedAt,
	).Scan(&client.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Client{}, domain.ErrCPFAlreadyRegistered
		}
		return domain.Client{}, fmt.Errorf("insert client: %w", err)
	}

	return client, nil
}

func (r *clientRepository) Get(ctx context.Context, id int64) (domain.Client, error) {
	q := r.store.querier(ctx)

	var (
		client domain.Client
		status string
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, name, cpf, status, created_at, updated_at
		FROM clients
		WHERE id = $1
	`, id).Scan(
		&client.ID, &client.Name, &client.CPF, &status,
		&client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, domain.ErrClientNotFound
		}
		return domain.Client{}, fmt.Errorf("select client: %w", err)
	}
	client.Status = domain.ClientStatus(status)

	return client, nil
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	q := r.store.querier(ctx)

	rows, err := q.QueryContext(ctx, `
		SELECT id, name, cpf, status, created_at, updated_at
		FROM clients
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		var (
			client domain.Client
			status string
		)
		if err := rows.Scan(
			&client.ID, &client.Name, &client.CPF, &status,
			&client.CreatedAt, &client.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan client row: %w", err)
		}
		client.Status = domain.ClientStatus(status)
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client rows: %w", err)
	}

	return clients, nil
}

func (r *clientRepository) Save(ctx context.Context, client domain.Client) error {
	q := r.store.querier(ctx)

	res, err := q.ExecContext(ctx, `
		UPDATE clients
		SET name = $1, cpf = $2, status = $3, updated_at = $4
		WHERE id = $5
	`,
		client.Name, client.CPF, string(client.Status), client.UpdatedAt, client.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCPFAlreadyRegistered
		}
		return fmt.Errorf("update client: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	q := r.store.querier(ctx)

	res, err := q.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) ExistsByCPF(ctx context.Context, cpf string, excludeID int64) (bool, error) {
	q := r.store.querier(ctx)

	var id int64
	err := q.QueryRowContext(ctx, `
		SELECT id FROM clients WHERE cpf = $1 AND id <> $2
	`, cpf, excludeID).Scan(&id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("check cpf exists: %w", err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

var _ domain.ClientRepository = (*clientRepository)(nil)
