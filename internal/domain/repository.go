package domain

import "context"

// ClientRepository описывает требования к хранилищу клиентов.
type ClientRepository interface {
	// Create сохраняет нового клиента и возвращает запись с присвоенным ID.
	Create(ctx context.Context, client Client) (Client, error)
	// Get возвращает клиента по идентификатору или ErrClientNotFound.
	Get(ctx context.Context, id int64) (Client, error)
	// List возвращает всех клиентов.
	List(ctx context.Context) ([]Client, error)
	// Save перезаписывает существующую запись клиента.
	Save(ctx context.Context, client Client) error
	// Delete удаляет клиента или возвращает ErrClientNotFound.
	Delete(ctx context.Context, id int64) error
	// ExistsByCPF проверяет занятость CPF, игнорируя запись excludeID (0 — не игнорировать).
	ExistsByCPF(ctx context.Context, cpf string, excludeID int64) (bool, error)
}

// ProductRepository описывает требования к хранилищу каталога.
type ProductRepository interface {
	Create(ctx context.Context, product Product) (Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	List(ctx context.Context) ([]Product, error)
	// Save применяет обновления к товару с учётом optimistic locking по Version.
	Save(ctx context.Context, product Product) error
	Delete(ctx context.Context, id int64) error
}

// OrderRepository описывает требования к хранилищу заказов.
// Заказ сохраняется и читается целиком, вместе с позициями.
type OrderRepository interface {
	Create(ctx context.Context, order Order) (Order, error)
	Get(ctx context.Context, id int64) (Order, error)
	List(ctx context.Context) ([]Order, error)
	// Save применяет обновления к заказу и его позициям с учётом optimistic locking.
	Save(ctx context.Context, order Order) error
	// Delete удаляет заказ каскадно вместе с позициями.
	// Складской остаток при этом намеренно не восстанавливается.
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// UnitOfWork выполняет fn в одной транзакционной границе:
// либо фиксируются все изменения, сделанные внутри fn, либо ни одно.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
