package client

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
)

// Service управляет справочником клиентов.
type Service struct {
	clients domain.ClientRepository
	logger  *log.Entry
}

// NewService создаёт сервис клиентов.
func NewService(clients domain.ClientRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "client-service")
	}
	return &Service{
		clients: clients,
		logger:  logger,
	}
}

// Create регистрирует нового клиента в статусе active.
// CPF — натуральный ключ: повторная регистрация возвращает ErrCPFAlreadyRegistered.
func (s *Service) Create(ctx context.Context, name, cpf string) (domain.Client, error) {
	taken, err := s.clients.ExistsByCPF(ctx, cpf, 0)
	if err != nil {
		return domain.Client{}, err
	}
	if taken {
		return domain.Client{}, domain.ErrCPFAlreadyRegistered
	}

	now := time.Now().UTC()
	client, err := s.clients.Create(ctx, domain.Client{
		Name:      name,
		CPF:       cpf,
		Status:    domain.ClientStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.Client{}, err
	}

	s.logger.WithField("client_id", client.ID).Info("client created")
	return client, nil
}

// Get возвращает клиента по идентификатору.
func (s *Service) Get(ctx context.Context, id int64) (domain.Client, error) {
	return s.clients.Get(ctx, id)
}

// List возвращает всех клиентов.
func (s *Service) List(ctx context.Context) ([]domain.Client, error) {
	return s.clients.List(ctx)
}

// Update обновляет имя и CPF клиента.
func (s *Service) Update(ctx context.Context, id int64, name, cpf string) (domain.Client, error) {
	client, err := s.clients.Get(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}

	if cpf != client.CPF {
		taken, err := s.clients.ExistsByCPF(ctx, cpf, id)
		if err != nil {
			return domain.Client{}, err
		}
		if taken {
			return domain.Client{}, domain.ErrCPFAlreadyRegistered
		}
	}

	client.Name = name
	client.CPF = cpf
	client.UpdatedAt = time.Now().UTC()

	if err := s.clients.Save(ctx, client); err != nil {
		return domain.Client{}, err
	}

	s.logger.WithField("client_id", id).Info("client updated")
	return client, nil
}

// UpdateStatus переключает активность клиента.
// Статус влияет только на создание новых заказов; существующие заказы не трогаются.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.ClientStatus) (domain.Client, error) {
	client, err := s.clients.Get(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}

	client.Status = status
	client.UpdatedAt = time.Now().UTC()

	if err := s.clients.Save(ctx, client); err != nil {
		return domain.Client{}, err
	}

	s.logger.WithFields(log.Fields{
		"client_id": id,
		"status":    string(status),
	}).Info("client status changed")
	return client, nil
}

// Delete удаляет клиента.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.clients.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("client_id", id).Info("client deleted")
	return nil
}
