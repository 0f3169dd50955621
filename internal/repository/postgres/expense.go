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

type expenseRepository struct {
	db *sqlx.DB
}

func NewExpenseRepository(db *sqlx.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	query := `
		INSERT INTO expenses (id, category, amount, date, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		expense.ID,
		expense.Category,
		expense.Amount,
		expense.Date,
		expense.Description,
		expense.CreatedAt,
		expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *expenseRepository) Get(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	query := `SELECT id, category, amount, date, description, created_at, updated_at
		FROM expenses WHERE id = $1`
	var expense model.Expense
	err := r.db.GetContext(ctx, &expense, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("Expense")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return &expense, nil
}

func (r *expenseRepository) Update(ctx context.Context, expense *model.Expense) error {
	query := `UPDATE expenses
		SET category = $1, amount = $2, date = $3, description = $4, updated_at = $5
		WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query,
		expense.Category,
		expense.Amount,
		expense.Date,
		expense.Description,
		expense.UpdatedAt,
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return rowsAffectedOrNotFound(res, "Expense")
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return rowsAffectedOrNotFound(res, "Expense")
}

func (r *expenseRepository) List(ctx context.Context) ([]*model.Expense, error) {
	query := `SELECT id, category, amount, date, description, created_at, updated_at FROM expenses`
	expenses := []*model.Expense{}
	if err := r.db.SelectContext(ctx, &expenses, query); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}
