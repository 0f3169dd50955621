package view

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniketdange3/dental-clinic-api/internal/model"
)

func readyExpenses(expenses ...*model.Expense) *ExpensesView {
	v := NewExpensesView(nil, nil)
	v.state = StateReady
	v.snapshot = expenses
	return v
}

func expenseOn(category model.ExpenseCategory, amount float64, date time.Time) *model.Expense {
	return &model.Expense{
		Base:     model.Base{ID: uuid.New()},
		Category: category,
		Amount:   amount,
		Date:     date,
	}
}

func TestExpensesDefaultSortNewestFirst(t *testing.T) {
	v := readyExpenses(
		expenseOn(model.CategoryConsumables, 10, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)),
		expenseOn(model.CategoryEquipment, 20, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
		expenseOn(model.CategorySalaries, 30, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)),
	)

	field, dir := v.Sort()
	assert.Equal(t, ExpenseSortDate, field)
	assert.Equal(t, model.Descending, dir)

	records := v.Records()
	require.Len(t, records, 3)
	assert.Equal(t, model.CategoryEquipment, records[0].Category)
	assert.Equal(t, model.CategorySalaries, records[1].Category)
	assert.Equal(t, model.CategoryConsumables, records[2].Category)
}

func TestExpensesUndatedSortsLast(t *testing.T) {
	v := readyExpenses(
		expenseOn(model.CategoryConsumables, 10, time.Time{}),
		expenseOn(model.CategoryEquipment, 20, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
	)

	records := v.Records()
	require.Len(t, records, 2)
	assert.Equal(t, model.CategoryEquipment, records[0].Category)
	assert.Equal(t, model.CategoryConsumables, records[1].Category)

	v.ToggleSort(ExpenseSortDate)
	records = v.Records()
	assert.Equal(t, model.CategoryConsumables, records[1].Category)
}

func TestExpensesToggleSort(t *testing.T) {
	v := readyExpenses(
		expenseOn(model.CategoryConsumables, 10, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)),
		expenseOn(model.CategoryEquipment, 30, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)),
		expenseOn(model.CategorySalaries, 20, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)),
	)

	// switching fields starts descending
	v.ToggleSort(ExpenseSortAmount)
	field, dir := v.Sort()
	assert.Equal(t, ExpenseSortAmount, field)
	assert.Equal(t, model.Descending, dir)
	records := v.Records()
	assert.Equal(t, 30.0, records[0].Amount)

	v.ToggleSort(ExpenseSortAmount)
	records = v.Records()
	assert.Equal(t, 10.0, records[0].Amount)
}

func TestExpensesMonthFilter(t *testing.T) {
	v := readyExpenses(
		expenseOn(model.CategoryConsumables, 10, time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)),
		expenseOn(model.CategoryConsumables, 20, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)),
		expenseOn(model.CategoryConsumables, 30, time.Date(2026, 7, 25, 0, 0, 0, 0, time.UTC)),
		expenseOn(model.CategoryEquipment, 40, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)),
	)

	v.SetFilter(ExpenseFilter{Month: "2026-08"})
	assert.Len(t, v.Records(), 3)

	v.SetFilter(ExpenseFilter{Month: "2026-08", Category: model.CategoryConsumables})
	records := v.Records()
	require.Len(t, records, 2)
	for _, e := range records {
		assert.Equal(t, model.CategoryConsumables, e.Category)
	}
}

func TestExpensesMonthFilterKeepsLocalMonth(t *testing.T) {
	// 2026-08-31 23:30 in a UTC-negative zone is already September in UTC;
	// the filter must still treat it as an August expense
	loc := time.FixedZone("UTC-5", -5*3600)
	v := readyExpenses(
		expenseOn(model.CategoryConsumables, 10, time.Date(2026, 8, 31, 23, 30, 0, 0, loc)),
	)

	v.SetFilter(ExpenseFilter{Month: "2026-08"})
	assert.Len(t, v.Records(), 1)

	v.SetFilter(ExpenseFilter{Month: "2026-09"})
	assert.Empty(t, v.Records())
}

func TestExpensesSummary(t *testing.T) {
	v := readyExpenses(
		expenseOn(model.CategoryConsumables, 10, time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)),
		expenseOn(model.CategoryConsumables, 20, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)),
		expenseOn(model.CategoryEquipment, 40, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)),
	)

	summary := v.Summary()
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 70.0, summary.TotalAmount)
	assert.Equal(t, 30.0, summary.ByCategory[model.CategoryConsumables])
	assert.Equal(t, 40.0, summary.ByCategory[model.CategoryEquipment])

	// aggregates follow the active filter
	v.SetFilter(ExpenseFilter{Category: model.CategoryEquipment})
	summary = v.Summary()
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 40.0, summary.TotalAmount)
}

func TestExpensesCRUDMerge(t *testing.T) {
	v := NewExpensesView(newTestClient(t), nil)
	require.NoError(t, v.Load(context.Background()))

	amount := 150.0
	created, err := v.Create(context.Background(), &model.ExpenseRequest{
		Category: model.CategoryMaintenance,
		Amount:   &amount,
	})
	require.NoError(t, err)
	// server default date is merged back
	assert.False(t, created.Date.IsZero())

	newAmount := 175.0
	_, err = v.Update(context.Background(), created.ID, &model.ExpenseRequest{
		Category: model.CategoryMaintenance,
		Amount:   &newAmount,
	})
	require.NoError(t, err)

	records := v.Records()
	require.Len(t, records, 1)
	assert.Equal(t, 175.0, records[0].Amount)

	require.NoError(t, v.Delete(context.Background(), created.ID))
	assert.Empty(t, v.Records())
}
