package view

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/aniketdange3/dental-clinic-api/internal/client"
	"github.com/aniketdange3/dental-clinic-api/internal/model"
)

type ExpenseSortField string

const (
	ExpenseSortDate     ExpenseSortField = "date"
	ExpenseSortAmount   ExpenseSortField = "amount"
	ExpenseSortCategory ExpenseSortField = "category"
)

// ExpenseFilter is a conjunction of predicates; zero values match all.
// Month is "YYYY-MM".
type ExpenseFilter struct {
	Category model.ExpenseCategory
	Month    string
}

func (f ExpenseFilter) matches(e *model.Expense) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Month != "" {
		// compare in the date's own location so a month boundary is not
		// shifted by a timezone conversion
		if e.Date.IsZero() || e.Date.Format("2006-01") != f.Month {
			return false
		}
	}
	return true
}

// ExpenseSummary is recomputed from the filtered set on every call.
type ExpenseSummary struct {
	Total       int
	TotalAmount float64
	ByCategory  map[model.ExpenseCategory]float64
}

// ExpensesView mirrors the expense collection.
type ExpensesView struct {
	client  *client.Client
	confirm Confirmer

	mu       sync.Mutex
	state    State
	lastErr  string
	busy     bool
	snapshot []*model.Expense

	sortField ExpenseSortField
	sortDir   model.SortDirection
	filter    ExpenseFilter
}

func NewExpensesView(c *client.Client, confirm Confirmer) *ExpensesView {
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	return &ExpensesView{
		client:    c,
		confirm:   confirm,
		state:     StateLoading,
		sortField: ExpenseSortDate,
		sortDir:   model.Descending,
	}
}

func (v *ExpensesView) Load(ctx context.Context) error {
	expenses, err := v.client.ListExpenses(ctx)

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
	v.snapshot = expenses
	return nil
}

func (v *ExpensesView) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *ExpensesView) LastError() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

func (v *ExpensesView) beginWrite() error {
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

func (v *ExpensesView) endWrite() {
	v.mu.Lock()
	v.busy = false
	v.mu.Unlock()
}

func (v *ExpensesView) Create(ctx context.Context, req *model.ExpenseRequest) (*model.Expense, error) {
	if err := v.beginWrite(); err != nil {
		return nil, err
	}
	defer v.endWrite()

	created, err := v.client.CreateExpense(ctx, req)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.snapshot = append(v.snapshot, created)
	v.mu.Unlock()
	return created, nil
}

func (v *ExpensesView) Update(ctx context.Context, id uuid.UUID, req *model.ExpenseRequest) (*model.Expense, error) {
	if err := v.beginWrite(); err != nil {
		return nil, err
	}
	defer v.endWrite()

	updated, err := v.client.UpdateExpense(ctx, id, req)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	for i, e := range v.snapshot {
		if e.ID == id {
			v.snapshot[i] = updated
			break
		}
	}
	v.mu.Unlock()
	return updated, nil
}

func (v *ExpensesView) Delete(ctx context.Context, id uuid.UUID) error {
	if !v.confirm.Confirm("Are you sure you want to delete this expense?") {
		return ErrDeclined
	}
	if err := v.beginWrite(); err != nil {
		return err
	}
	defer v.endWrite()

	if err := v.client.DeleteExpense(ctx, id); err != nil {
		return err
	}

	v.mu.Lock()
	for i, e := range v.snapshot {
		if e.ID == id {
			v.snapshot = append(v.snapshot[:i], v.snapshot[i+1:]...)
			break
		}
	}
	v.mu.Unlock()
	return nil
}

// ToggleSort flips the direction when the field is already selected,
// otherwise switches to the field in descending order (newest and
// largest first is the usual ledger view).
func (v *ExpensesView) ToggleSort(field ExpenseSortField) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sortField == field {
		v.sortDir = v.sortDir.Flip()
		return
	}
	v.sortField = field
	v.sortDir = model.Descending
}

func (v *ExpensesView) Sort() (ExpenseSortField, model.SortDirection) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sortField, v.sortDir
}

func (v *ExpensesView) SetFilter(f ExpenseFilter) {
	v.mu.Lock()
	v.filter = f
	v.mu.Unlock()
}

// Records derives the current projection. Expenses without a date sort
// after every dated one regardless of direction.
func (v *ExpensesView) Records() []*model.Expense {
	v.mu.Lock()
	sorted := make([]*model.Expense, len(v.snapshot))
	copy(sorted, v.snapshot)
	field, dir, filter := v.sortField, v.sortDir, v.filter
	v.mu.Unlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		var less bool
		switch field {
		case ExpenseSortAmount:
			if a.Amount == b.Amount {
				return false
			}
			less = a.Amount < b.Amount
		case ExpenseSortCategory:
			if a.Category == b.Category {
				return false
			}
			less = a.Category < b.Category
		default:
			switch {
			case a.Date.IsZero() && b.Date.IsZero():
				return false
			case a.Date.IsZero():
				return false
			case b.Date.IsZero():
				return true
			case a.Date.Equal(b.Date):
				return false
			}
			less = a.Date.Before(b.Date)
		}
		if dir == model.Descending {
			return !less
		}
		return less
	})

	out := make([]*model.Expense, 0, len(sorted))
	for _, e := range sorted {
		if filter.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Summary tallies the filtered set in one pass. A missing amount counts
// as zero.
func (v *ExpensesView) Summary() ExpenseSummary {
	summary := ExpenseSummary{ByCategory: make(map[model.ExpenseCategory]float64)}
	for _, e := range v.Records() {
		summary.Total++
		summary.TotalAmount += e.Amount
		if e.Category != "" {
			summary.ByCategory[e.Category] += e.Amount
		}
	}
	return summary
}
