package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aniketdange3/dental-clinic-api/internal/model"
	"github.com/aniketdange3/dental-clinic-api/internal/repository"
	apperrors "github.com/aniketdange3/dental-clinic-api/pkg/errors"
)

type inventoryRepository struct {
	db *sqlx.DB
}

func NewInventoryRepository(db *sqlx.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, name, quantity, supplier, purchase_date, expiry_date, low_stock_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Name,
		item.Quantity,
		item.Supplier,
		item.PurchaseDate,
		item.ExpiryDate,
		item.LowStockThreshold,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

func (r *inventoryRepository) Get(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	query := `SELECT id, name, quantity, supplier, purchase_date, expiry_date, low_stock_threshold, created_at, updated_at
		FROM inventory_items WHERE id = $1`
	var item model.InventoryItem
	err := r.db.GetContext(ctx, &item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("Inventory item")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return &item, nil
}

func (r *inventoryRepository) Update(ctx context.Context, item *model.InventoryItem) error {
	query := `UPDATE inventory_items
		SET name = $1, quantity = $2, supplier = $3, purchase_date = $4, expiry_date = $5, low_stock_threshold = $6, updated_at = $7
		WHERE id = $8`
	res, err := r.db.ExecContext(ctx, query,
		item.Name,
		item.Quantity,
		item.Supplier,
		item.PurchaseDate,
		item.ExpiryDate,
		item.LowStockThreshold,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	return rowsAffectedOrNotFound(res, "Inventory item")
}

func (r *inventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return rowsAffectedOrNotFound(res, "Inventory item")
}

func (r *inventoryRepository) List(ctx context.Context) ([]*model.InventoryItem, error) {
	query := `SELECT id, name, quantity, supplier, purchase_date, expiry_date, low_stock_threshold, created_at, updated_at
		FROM inventory_items`
	items := []*model.InventoryItem{}
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, nil
}
