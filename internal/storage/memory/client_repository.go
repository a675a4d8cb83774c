package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
)

// clientRepositoryInMemory — in-memory реализация ClientRepository.
type clientRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Client
	nextID int64
}

// NewClientRepository возвращает in-memory репозиторий клиентов.
func NewClientRepository() domain.ClientRepository {
	return &clientRepositoryInMemory{
		items: make(map[int64]domain.Client),
	}
}

// Create сохраняет нового клиента, присваивая идентификатор.
func (r *clientRepositoryInMemory) Create(_ context.Context, client domain.Client) (domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	client.ID = r.nextID
	r.items[client.ID] = client
	return client, nil
}

// Get возвращает клиента или ErrClientNotFound.
func (r *clientRepositoryInMemory) Get(_ context.Context, id int64) (domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.items[id]
	if !ok {
		return domain.Client{}, domain.ErrClientNotFound
	}
	return client, nil
}

// List возвращает всех клиентов по возрастанию идентификатора.
func (r *clientRepositoryInMemory) List(_ context.Context) ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Client, 0, len(r.items))
	for _, client := range r.items {
		result = append(result, client)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Save перезаписывает существующую запись клиента.
func (r *clientRepositoryInMemory) Save(_ context.Context, client domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[client.ID]; !ok {
		return domain.ErrClientNotFound
	}
	r.items[client.ID] = client
	return nil
}

// Delete удаляет клиента или возвращает ErrClientNotFound.
func (r *clientRepositoryInMemory) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.items, id)
	return nil
}

// ExistsByCPF проверяет занятость CPF, игнорируя запись excludeID.
func (r *clientRepositoryInMemory) ExistsByCPF(_ context.Context, cpf string, excludeID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, client := range r.items {
		if client.CPF == cpf && client.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

var _ domain.ClientRepository = (*clientRepositoryInMemory)(nil)
