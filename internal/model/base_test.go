package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampAcceptsDateOnly(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2026-09-15"`), &ts))
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), ts.Time)
}

func TestTimestampAcceptsRFC3339(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2026-09-15T10:30:00Z"`), &ts))
	assert.Equal(t, 10, ts.Hour())
}

func TestTimestampNullAndEmpty(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`""`), &ts))
	assert.True(t, ts.IsZero())
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"15/09/2026"`), &ts))
}

func TestSortDirectionFlip(t *testing.T) {
	assert.Equal(t, Descending, Ascending.Flip())
	assert.Equal(t, Ascending, Descending.Flip())
}

func TestExpenseRequestDefaultsDate(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	amount := 10.0

	e := (&ExpenseRequest{Category: CategoryConsumables, Amount: &amount}).Expense(now)
	assert.Equal(t, now, e.Date)

	explicit := Timestamp{Time: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	e = (&ExpenseRequest{Category: CategoryConsumables, Amount: &amount, Date: &explicit}).Expense(now)
	assert.Equal(t, explicit.Time, e.Date)
}

func TestInventoryItemRequestDefaults(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	qty := 3

	item := (&InventoryItemRequest{Name: "Gloves", Quantity: &qty}).Item(now)
	assert.Equal(t, DefaultLowStockThreshold, item.LowStockThreshold)
	assert.Equal(t, now, item.PurchaseDate)
	assert.Nil(t, item.ExpiryDate)
	assert.True(t, item.LowStock())
}
