package product

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
)

// CreateInput описывает данные для регистрации товара.
type CreateInput struct {
	Name        string
	PriceMinor  int64
	Description string
	Quantity    int32
}

// Service управляет каталогом товаров.
type Service struct {
	products domain.ProductRepository
	logger   *log.Entry
}

// NewService создаёт сервис каталога.
func NewService(products domain.ProductRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "product-service")
	}
	return &Service{
		products: products,
		logger:   logger,
	}
}

// Create регистрирует новый товар в статусе active.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Product, error) {
	now := time.Now().UTC()
	product, err := s.products.Create(ctx, domain.Product{
		Name:        input.Name,
		PriceMinor:  input.PriceMinor,
		Description: input.Description,
		Quantity:    input.Quantity,
		Status:      domain.ProductStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return domain.Product{}, err
	}

	s.logger.WithField("product_id", product.ID).Info("product created")
	return product, nil
}

// Get возвращает товар по идентификатору.
func (s *Service) Get(ctx context.Context, id int64) (domain.Product, error) {
	return s.products.Get(ctx, id)
}

// List возвращает все товары каталога.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// Update обновляет атрибуты товара.
// Складской остаток меняется только здесь и в резервировании под заказ.
func (s *Service) Update(ctx context.Context, id int64, input CreateInput) (domain.Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	product.Name = input.Name
	product.PriceMinor = input.PriceMinor
	product.Description = input.Description
	product.Quantity = input.Quantity
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Save(ctx, product); err != nil {
		return domain.Product{}, err
	}

	s.logger.WithField("product_id", id).Info("product updated")
	return product, nil
}

// UpdateStatus переключает доступность товара для резервирования.
// Цена уже добавленных позиций — снимок; деактивация каталога их не меняет.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.ProductStatus) (domain.Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	product.Status = status
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Save(ctx, product); err != nil {
		return domain.Product{}, err
	}

	s.logger.WithFields(log.Fields{
		"product_id": id,
		"status":     string(status),
	}).Info("product status changed")
	return product, nil
}

// Delete удаляет товар из каталога.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("product_id", id).Info("product deleted")
	return nil
}
