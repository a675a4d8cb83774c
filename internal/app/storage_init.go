package app

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
	"github.com/vladislavdragonenkov/orderhub/internal/storage/memory"
	"github.com/vladislavdragonenkov/orderhub/internal/storage/postgres"
)

// ErrPostgresDSNRequired возвращается, когда выбран драйвер postgres,
// но строка подключения не задана.
var ErrPostgresDSNRequired = errors.New("для драйвера postgres требуется строка подключения")

// runtimeDependencies собирает инфраструктурные зависимости приложения:
// репозитории, единицу работы и, для postgres, открытое соединение.
type runtimeDependencies struct {
	uow      domain.UnitOfWork
	orders   domain.OrderRepository
	clients  domain.ClientRepository
	products domain.ProductRepository
	outbox   domain.OutboxRepository

	// store не nil только для драйвера postgres.
	store *postgres.Store
}

// Close освобождает ресурсы хранилища.
func (d *runtimeDependencies) Close() error {
	if d.store == nil {
		return nil
	}
	return d.store.Close()
}

// initRuntimeDependencies создаёт хранилище по выбранному драйверу.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	switch cfg.StorageDriver {
	case StorageDriverMemory:
		logger.Info("используем in-memory хранилище")
		return &runtimeDependencies{
			uow:      memory.NewUnitOfWork(),
			orders:   memory.NewOrderRepository(),
			clients:  memory.NewClientRepository(),
			products: memory.NewProductRepository(),
			outbox:   memory.NewOutboxRepository(),
		}, nil
	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, ErrPostgresDSNRequired
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("подключение к postgres: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			logger.Info("применяем миграции схемы")
			if err := store.MigrateUp(ctx, 0); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("миграции postgres: %w", err)
			}
		}
		logger.Info("используем postgres хранилище")
		return &runtimeDependencies{
			uow:      postgres.NewUnitOfWork(store),
			orders:   postgres.NewOrderRepository(store),
			clients:  postgres.NewClientRepository(store),
			products: postgres.NewProductRepository(store),
			outbox:   postgres.NewOutboxRepository(store),
			store:    store,
		}, nil
	default:
		return nil, fmt.Errorf("неизвестный драйвер хранилища %q", cfg.StorageDriver)
	}
}
