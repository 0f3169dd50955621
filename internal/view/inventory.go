package view

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/aniketdange3/dental-clinic-api/internal/client"
	"github.com/aniketdange3/dental-clinic-api/internal/model"
)

type InventorySortField string

const (
	InventorySortName     InventorySortField = "name"
	InventorySortQuantity InventorySortField = "quantity"
	InventorySortExpiry   InventorySortField = "expiry"
)

// InventoryFilter is a conjunction of predicates; zero values match all.
type InventoryFilter struct {
	LowStockOnly bool
	Supplier     string
	Name         string
}

func (f InventoryFilter) matches(item *model.InventoryItem) bool {
	if f.LowStockOnly && !item.LowStock() {
		return false
	}
	if f.Supplier != "" && item.Supplier != f.Supplier {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(f.Name)) {
		return false
	}
	return true
}

// InventorySummary is recomputed from the filtered set on every call.
// Items with no supplier are counted in the totals but omitted from the
// supplier tally.
type InventorySummary struct {
	Total         int
	TotalQuantity int
	LowStock      int
	BySupplier    map[string]int
}

// InventoryView mirrors the inventory collection.
type InventoryView struct {
	client  *client.Client
	confirm Confirmer

	mu       sync.Mutex
	state    State
	lastErr  string
	busy     bool
	snapshot []*model.InventoryItem

	sortField InventorySortField
	sortDir   model.SortDirection
	filter    InventoryFilter
}

func NewInventoryView(c *client.Client, confirm Confirmer) *InventoryView {
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	return &InventoryView{
		client:    c,
		confirm:   confirm,
		state:     StateLoading,
		sortField: InventorySortName,
		sortDir:   model.Ascending,
	}
}

func (v *InventoryView) Load(ctx context.Context) error {
	items, err := v.client.ListInventoryItems(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.state = StateErrored
		v.lastErr = err.Error()
		v.snapshot = nil
		return err
	}
	v.state = StateReady
	v.lastErr = ""
	v.snapshot = items
	return nil
}

func (v *InventoryView) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *InventoryView) LastError() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

func (v *InventoryView) beginWrite() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state != StateReady {
		return ErrNotReady
	}
	if v.busy {
		return ErrWriteInFlight
	}
	v.busy = true
	return nil
}

func (v *InventoryView) endWrite() {
	v.mu.Lock()
	v.busy = false
	v.mu.Unlock()
}

func (v *InventoryView) Create(ctx context.Context, req *model.InventoryItemRequest) (*model.InventoryItem, error) {
	if err := v.beginWrite(); err != nil {
		return nil, err
	}
	defer v.endWrite()

	created, err := v.client.CreateInventoryItem(ctx, req)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.snapshot = append(v.snapshot, created)
	v.mu.Unlock()
	return created, nil
}

func (v *InventoryView) Update(ctx context.Context, id uuid.UUID, req *model.InventoryItemRequest) (*model.InventoryItem, error) {
	if err := v.beginWrite(); err != nil {
		return nil, err
	}
	defer v.endWrite()

	updated, err := v.client.UpdateInventoryItem(ctx, id, req)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	for i, item := range v.snapshot {
		if item.ID == id {
			v.snapshot[i] = updated
			break
		}
	}
	v.mu.Unlock()
	return updated, nil
}

func (v *InventoryView) Delete(ctx context.Context, id uuid.UUID) error {
	if !v.confirm.Confirm("Are you sure you want to delete this item?") {
		return ErrDeclined
	}
	if err := v.beginWrite(); err != nil {
		return err
	}
	defer v.endWrite()

	if err := v.client.DeleteInventoryItem(ctx, id); err != nil {
		return err
	}

	v.mu.Lock()
	for i, item := range v.snapshot {
		if item.ID == id {
			v.snapshot = append(v.snapshot[:i], v.snapshot[i+1:]...)
			break
		}
	}
	v.mu.Unlock()
	return nil
}

func (v *InventoryView) ToggleSort(field InventorySortField) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sortField == field {
		v.sortDir = v.sortDir.Flip()
		return
	}
	v.sortField = field
	v.sortDir = model.Ascending
}

func (v *InventoryView) Sort() (InventorySortField, model.SortDirection) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sortField, v.sortDir
}

func (v *InventoryView) SetFilter(f InventoryFilter) {
	v.mu.Lock()
	v.filter = f
	v.mu.Unlock()
}

// Records derives the current projection. Items without an expiry date
// sort after every dated item regardless of direction.
func (v *InventoryView) Records() []*model.InventoryItem {
	v.mu.Lock()
	sorted := make([]*model.InventoryItem, len(v.snapshot))
	copy(sorted, v.snapshot)
	field, dir, filter := v.sortField, v.sortDir, v.filter
	v.mu.Unlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		var less bool
		switch field {
		case InventorySortQuantity:
			if a.Quantity == b.Quantity {
				return false
			}
			less = a.Quantity < b.Quantity
		case InventorySortExpiry:
			switch {
			case a.ExpiryDate == nil && b.ExpiryDate == nil:
				return false
			case a.ExpiryDate == nil:
				return false
			case b.ExpiryDate == nil:
				return true
			case a.ExpiryDate.Equal(*b.ExpiryDate):
				return false
			default:
				less = a.ExpiryDate.Before(*b.ExpiryDate)
			}
		default:
			na, nb := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if na == nb {
				return false
			}
			less = na < nb
		}
		if dir == model.Descending {
			return !less
		}
		return less
	})

	out := make([]*model.InventoryItem, 0, len(sorted))
	for _, item := range sorted {
		if filter.matches(item) {
			out = append(out, item)
		}
	}
	return out
}

func (v *InventoryView) Summary() InventorySummary {
	summary := InventorySummary{BySupplier: make(map[string]int)}
	for _, item := range v.Records() {
		summary.Total++
		summary.TotalQuantity += item.Quantity
		if item.LowStock() {
			summary.LowStock++
		}
		if item.Supplier != "" {
			summary.BySupplier[item.Supplier]++
		}
	}
	return summary
}
