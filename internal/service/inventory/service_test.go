package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniketdange3/dental-clinic-api/internal/model"
	"github.com/aniketdange3/dental-clinic-api/internal/repository/memory"
	apperrors "github.com/aniketdange3/dental-clinic-api/pkg/errors"
)

func validItem() *model.InventoryItem {
	return &model.InventoryItem{
		Name:              "Dental Floss",
		Quantity:          40,
		Supplier:          "MediSupply",
		PurchaseDate:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		LowStockThreshold: model.DefaultLowStockThreshold,
	}
}

func TestCreateItem(t *testing.T) {
	svc := NewService(memory.NewInventoryRepository())

	created, err := svc.CreateItem(context.Background(), validItem())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	found, err := svc.GetItem(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dental Floss", found.Name)
	assert.Equal(t, 40, found.Quantity)
}

func TestCreateItemValidation(t *testing.T) {
	svc := NewService(memory.NewInventoryRepository())

	tests := []struct {
		name   string
		mutate func(*model.InventoryItem)
	}{
		{"missing name", func(i *model.InventoryItem) { i.Name = "" }},
		{"negative quantity", func(i *model.InventoryItem) { i.Quantity = -1 }},
		{"negative threshold", func(i *model.InventoryItem) { i.LowStockThreshold = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem()
			tt.mutate(item)
			_, err := svc.CreateItem(context.Background(), item)
			assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestCreateItemZeroQuantity(t *testing.T) {
	svc := NewService(memory.NewInventoryRepository())

	item := validItem()
	item.Quantity = 0
	created, err := svc.CreateItem(context.Background(), item)
	require.NoError(t, err)
	assert.True(t, created.LowStock())
}

func TestUpdateItemNotFound(t *testing.T) {
	svc := NewService(memory.NewInventoryRepository())

	item := validItem()
	item.ID = uuid.New()
	_, err := svc.UpdateItem(context.Background(), item)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListLowStockItems(t *testing.T) {
	svc := NewService(memory.NewInventoryRepository())

	low := validItem()
	low.Name = "Gloves"
	low.Quantity = 5
	_, err := svc.CreateItem(context.Background(), low)
	require.NoError(t, err)

	atThreshold := validItem()
	atThreshold.Name = "Masks"
	atThreshold.Quantity = model.DefaultLowStockThreshold
	_, err = svc.CreateItem(context.Background(), atThreshold)
	require.NoError(t, err)

	ok := validItem()
	ok.Name = "Floss"
	_, err = svc.CreateItem(context.Background(), ok)
	require.NoError(t, err)

	lowStock, err := svc.ListLowStockItems(context.Background())
	require.NoError(t, err)
	require.Len(t, lowStock, 2)
	assert.Equal(t, "Gloves", lowStock[0].Name)
	assert.Equal(t, "Masks", lowStock[1].Name)
}
