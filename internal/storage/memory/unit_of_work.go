package memory

import (
	"context"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
)

// unitOfWorkInMemory выполняет fn без транзакционной изоляции.
// In-memory хранилище рассчитано на single-writer сценарии разработки и тестов:
// бизнес-проверки агрегата выполняются до первого сохранения, поэтому
// неудачный вызов не оставляет частичных изменений.
type unitOfWorkInMemory struct{}

// NewUnitOfWork возвращает unit of work для in-memory хранилища.
func NewUnitOfWork() domain.UnitOfWork {
	return unitOfWorkInMemory{}
}

func (unitOfWorkInMemory) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ domain.UnitOfWork = unitOfWorkInMemory{}
