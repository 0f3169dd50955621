package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aniketdange3/dental-clinic-api/internal/model"
	"github.com/aniketdange3/dental-clinic-api/internal/repository"
	apperrors "github.com/aniketdange3/dental-clinic-api/pkg/errors"
)

type InventoryService interface {
	CreateItem(ctx context.Context, item *model.InventoryItem) (*model.InventoryItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	UpdateItem(ctx context.Context, item *model.InventoryItem) (*model.InventoryItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListItems(ctx context.Context) ([]*model.InventoryItem, error)
	ListLowStockItems(ctx context.Context) ([]*model.InventoryItem, error)
}

type Service struct {
	repo repository.InventoryRepository
}

func NewService(repo repository.InventoryRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateItem(ctx context.Context, item *model.InventoryItem) (*model.InventoryItem, error) {
	if err := s.validateItem(item); err != nil {
		return nil, err
	}

	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	return item, nil
}

func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateItem(ctx context.Context, item *model.InventoryItem) (*model.InventoryItem, error) {
	if err := s.validateItem(item); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListItems(ctx context.Context) ([]*model.InventoryItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, nil
}

// ListLowStockItems returns items at or below their configured threshold,
// in storage order. Used by the alert sweep.
func (s *Service) ListLowStockItems(ctx context.Context) ([]*model.InventoryItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}

	lowStock := make([]*model.InventoryItem, 0)
	for _, item := range items {
		if item.LowStock() {
			lowStock = append(lowStock, item)
		}
	}
	return lowStock, nil
}

func (s *Service) validateItem(item *model.InventoryItem) error {
	if item.Name == "" {
		return apperrors.NewValidation("name is required")
	}
	if item.Quantity < 0 {
		return apperrors.NewValidation("quantity cannot be negative")
	}
	if item.LowStockThreshold < 0 {
		return apperrors.NewValidation("low stock threshold cannot be negative")
	}
	return nil
}
