package model

import "time"

// DefaultLowStockThreshold is applied when a write omits the threshold.
const DefaultLowStockThreshold = 10

type InventoryItem struct {
	Base
	Name              string     `db:"name" json:"name"`
	Quantity          int        `db:"quantity" json:"quantity"`
	Supplier          string     `db:"supplier" json:"supplier"`
	PurchaseDate      time.Time  `db:"purchase_date" json:"purchaseDate"`
	ExpiryDate        *time.Time `db:"expiry_date" json:"expiryDate,omitempty"`
	LowStockThreshold int        `db:"low_stock_threshold" json:"lowStockThreshold"`
}

// LowStock reports whether the item is at or below its configured threshold.
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

type InventoryItemRequest struct {
	Name              string     `json:"name" binding:"required"`
	Quantity          *int       `json:"quantity" binding:"required,gte=0"`
	Supplier          string     `json:"supplier"`
	PurchaseDate      *Timestamp `json:"purchaseDate"`
	ExpiryDate        *Timestamp `json:"expiryDate"`
	LowStockThreshold *int       `json:"lowStockThreshold" binding:"omitempty,gte=0"`
}

// Item builds the model record, applying defaults for omitted fields:
// purchase date now, threshold DefaultLowStockThreshold, supplier "".
func (r *InventoryItemRequest) Item(now time.Time) *InventoryItem {
	item := &InventoryItem{
		Name:              r.Name,
		Supplier:          r.Supplier,
		PurchaseDate:      now,
		LowStockThreshold: DefaultLowStockThreshold,
	}
	if r.Quantity != nil {
		item.Quantity = *r.Quantity
	}
	if r.PurchaseDate != nil && !r.PurchaseDate.IsZero() {
		item.PurchaseDate = r.PurchaseDate.Time
	}
	if r.ExpiryDate != nil && !r.ExpiryDate.IsZero() {
		expiry := r.ExpiryDate.Time
		item.ExpiryDate = &expiry
	}
	if r.LowStockThreshold != nil {
		item.LowStockThreshold = *r.LowStockThreshold
	}
	return item
}
