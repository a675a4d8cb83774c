package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
	"github.com/vladislavdragonenkov/orderhub/internal/metrics"
)

const aggregateTypeOrder = "order"

// Service оркестрирует операции над заказами.
// Каждая мутация выполняется в одной unit of work: заказ, товарные остатки
// и outbox-события фиксируются атомарно.
type Service struct {
	uow      domain.UnitOfWork
	orders   domain.OrderRepository
	clients  domain.ClientRepository
	products domain.ProductRepository
	outbox   domain.OutboxRepository
	logger   *log.Entry
	metrics  *metrics.OrderMetrics
}

// NewService создаёт сервис заказов.
func NewService(
	uow domain.UnitOfWork,
	orders domain.OrderRepository,
	clients domain.ClientRepository,
	products domain.ProductRepository,
	outbox domain.OutboxRepository,
	logger *log.Entry,
) *Service {
	svc := NewServiceWithoutMetrics(uow, orders, clients, products, outbox, logger)
	svc.metrics = metrics.NewOrderMetrics()
	return svc
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(
	uow domain.UnitOfWork,
	orders domain.OrderRepository,
	clients domain.ClientRepository,
	products domain.ProductRepository,
	outbox domain.OutboxRepository,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &Service{
		uow:      uow,
		orders:   orders,
		clients:  clients,
		products: products,
		outbox:   outbox,
		logger:   logger,
	}
}

// Create открывает пустой заказ для активного клиента.
func (s *Service) Create(ctx context.Context, clientID int64) (domain.Order, error) {
	defer s.observeDuration("create", time.Now())

	client, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return domain.Order{}, err
	}
	if !client.IsActive() {
		return domain.Order{}, domain.ErrClientNotActive
	}

	order := domain.NewOrder(client.ID)

	var created domain.Order
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		saved, err := s.orders.Create(ctx, *order)
		if err != nil {
			return err
		}
		created = saved
		return s.enqueueEvents(ctx, created.ID, order.PullEvents())
	})
	if err != nil {
		return domain.Order{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
	}
	s.logger.WithFields(log.Fields{
		"order_id":  created.ID,
		"client_id": client.ID,
	}).Info("order created")

	return created, nil
}

// AddItem резервирует сток и добавляет позицию в заказ.
func (s *Service) AddItem(ctx context.Context, orderID, productID int64, quantity int32) (domain.Order, error) {
	defer s.observeDuration("add_item", time.Now())

	var result domain.Order
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		order, err := s.orders.Get(ctx, orderID)
		if err != nil {
			return err
		}
		product, err := s.products.Get(ctx, productID)
		if err != nil {
			return err
		}

		if err := order.AddItem(&product, quantity); err != nil {
			if s.metrics != nil && errors.Is(err, domain.ErrInsufficientStock) {
				s.metrics.RecordReserveFailed()
			}
			return err
		}

		if err := s.products.Save(ctx, product); err != nil {
			return err
		}
		if err := s.orders.Save(ctx, order); err != nil {
			return err
		}
		if err := s.enqueueEvents(ctx, order.ID, order.PullEvents()); err != nil {
			return err
		}

		result = order
		return nil
	})
	if err != nil {
		s.recordConflict(err)
		return domain.Order{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordItemAdded()
	}
	s.logger.WithFields(log.Fields{
		"order_id":    orderID,
		"product_id":  productID,
		"quantity":    quantity,
		"total_minor": result.TotalMinor,
	}).Info("item added to order")

	return result, nil
}

// RemoveItem убирает позицию из заказа и возвращает сток товара.
func (s *Service) RemoveItem(ctx context.Context, orderID, productID int64) (domain.Order, error) {
	defer s.observeDuration("remove_item", time.Now())

	var result domain.Order
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		order, err := s.orders.Get(ctx, orderID)
		if err != nil {
			return err
		}
		product, err := s.products.Get(ctx, productID)
		if err != nil {
			return err
		}

		if err := order.RemoveItem(&product); err != nil {
			return err
		}

		if err := s.products.Save(ctx, product); err != nil {
			return err
		}
		if err := s.orders.Save(ctx, order); err != nil {
			return err
		}
		if err := s.enqueueEvents(ctx, order.ID, order.PullEvents()); err != nil {
			return err
		}

		result = order
		return nil
	})
	if err != nil {
		s.recordConflict(err)
		return domain.Order{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordItemRemoved()
	}
	s.logger.WithFields(log.Fields{
		"order_id":    orderID,
		"product_id":  productID,
		"total_minor": result.TotalMinor,
	}).Info("item removed from order")

	return result, nil
}

// UpdateStatus переводит заказ по разрешённому ребру state machine.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, newStatus domain.OrderStatus) (domain.Order, error) {
	defer s.observeDuration("update_status", time.Now())

	var (
		result domain.Order
		from   domain.OrderStatus
	)
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		order, err := s.orders.Get(ctx, orderID)
		if err != nil {
			return err
		}
		from = order.Status

		if err := order.ChangeStatus(newStatus); err != nil {
			return err
		}

		if err := s.orders.Save(ctx, order); err != nil {
			return err
		}
		if err := s.enqueueEvents(ctx, order.ID, order.PullEvents()); err != nil {
			return err
		}

		result = order
		return nil
	})
	if err != nil {
		s.recordConflict(err)
		return domain.Order{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordStatusTransition(string(from), string(newStatus))
	}
	s.logger.WithFields(log.Fields{
		"order_id": orderID,
		"from":     string(from),
		"to":       string(newStatus),
	}).Info("order status changed")

	return result, nil
}

// Get возвращает заказ с позициями.
func (s *Service) Get(ctx context.Context, orderID int64) (domain.Order, error) {
	return s.orders.Get(ctx, orderID)
}

// List возвращает все заказы.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// Delete удаляет заказ каскадно вместе с позициями.
// Складской остаток зарезервированных позиций не восстанавливается.
func (s *Service) Delete(ctx context.Context, orderID int64) error {
	defer s.observeDuration("delete", time.Now())

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		order, err := s.orders.Get(ctx, orderID)
		if err != nil {
			return err
		}
		if err := s.orders.Delete(ctx, orderID); err != nil {
			return err
		}

		payload, err := json.Marshal(map[string]any{
			"client_id":   order.ClientID,
			"status":      string(order.Status),
			"total_minor": order.TotalMinor,
			"occurred_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		if err != nil {
			return fmt.Errorf("marshal delete event: %w", err)
		}
		_, err = s.outbox.Enqueue(ctx, domain.OutboxMessage{
			AggregateType: aggregateTypeOrder,
			AggregateID:   strconv.FormatInt(orderID, 10),
			EventType:     string(domain.EventOrderDeleted),
			Payload:       payload,
		})
		return err
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderDeleted()
	}
	s.logger.WithField("order_id", orderID).Info("order deleted")

	return nil
}

// enqueueEvents конвертирует накопленные агрегатом события в outbox-сообщения.
func (s *Service) enqueueEvents(ctx context.Context, orderID int64, events []domain.Event) error {
	aggregateID := strconv.FormatInt(orderID, 10)
	for _, event := range events {
		fields := make(map[string]any, len(event.Fields)+1)
		for k, v := range event.Fields {
			fields[k] = v
		}
		fields["occurred_at"] = event.Occurred.Format(time.RFC3339Nano)

		payload, err := json.Marshal(fields)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", event.Type, err)
		}

		if _, err := s.outbox.Enqueue(ctx, domain.OutboxMessage{
			AggregateType: aggregateTypeOrder,
			AggregateID:   aggregateID,
			EventType:     string(event.Type),
			Payload:       payload,
		}); err != nil {
			return fmt.Errorf("enqueue event %s: %w", event.Type, err)
		}
	}
	return nil
}

func (s *Service) observeDuration(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordOperationDuration(operation, time.Since(start))
	}
}

func (s *Service) recordConflict(err error) {
	if s.metrics != nil && errors.Is(err, domain.ErrVersionConflict) {
		s.metrics.RecordVersionConflict()
	}
}
