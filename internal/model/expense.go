package model

import "time"

// ExpenseCategory is the fixed enumeration for the expense category field.
type ExpenseCategory string

const (
	CategoryConsumables ExpenseCategory = "Consumables"
	CategoryEquipment   ExpenseCategory = "Equipment"
	CategorySalaries    ExpenseCategory = "Salaries"
	CategoryMaintenance ExpenseCategory = "Maintenance"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryConsumables, CategoryEquipment, CategorySalaries, CategoryMaintenance:
		return true
	}
	return false
}

// ExpenseCategories returns the allowed categories in display order.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{CategoryConsumables, CategoryEquipment, CategorySalaries, CategoryMaintenance}
}

type Expense struct {
	Base
	Category    ExpenseCategory `db:"category" json:"category"`
	Amount      float64         `db:"amount" json:"amount"`
	Date        time.Time       `db:"date" json:"date"`
	Description string          `db:"description" json:"description"`
}

type ExpenseRequest struct {
	Category    ExpenseCategory `json:"category" binding:"required,expensecategory"`
	Amount      *float64        `json:"amount" binding:"required,gt=0"`
	Date        *Timestamp      `json:"date"`
	Description string          `json:"description"`
}

// Expense builds the model record, defaulting an omitted date to now.
func (r *ExpenseRequest) Expense(now time.Time) *Expense {
	exp := &Expense{
		Category:    r.Category,
		Date:        now,
		Description: r.Description,
	}
	if r.Amount != nil {
		exp.Amount = *r.Amount
	}
	if r.Date != nil && !r.Date.IsZero() {
		exp.Date = r.Date.Time
	}
	return exp
}
