package postgres

import (
	"context"
	"database/sql"
)

type txContextKey struct{}

// ContextWithTx кладёт открытую транзакцию в контекст.
// Репозитории этого пакета подхватывают её и выполняют запросы в её рамках;
// без транзакции в контексте запросы идут напрямую через пул подключений.
func ContextWithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

func txFromContext(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*sql.Tx)
	return tx, ok
}

// querier объединяет *sql.DB и *sql.Tx для запросов репозиториев.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) querier(ctx context.Context) querier {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return s.db
}
