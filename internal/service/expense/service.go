package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aniketdange3/dental-clinic-api/internal/model"
	"github.com/aniketdange3/dental-clinic-api/internal/repository"
	apperrors "github.com/aniketdange3/dental-clinic-api/pkg/errors"
)

type ExpenseService interface {
	CreateExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error)
	GetExpense(ctx context.Context, id uuid.UUID) (*model.Expense, error)
	UpdateExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
	ListExpenses(ctx context.Context) ([]*model.Expense, error)
}

type Service struct {
	repo repository.ExpenseRepository
}

func NewService(repo repository.ExpenseRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	if err := s.validateExpense(expense); err != nil {
		return nil, err
	}

	expense.ID = uuid.New()
	expense.CreatedAt = time.Now()
	expense.UpdatedAt = time.Now()

	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return expense, nil
}

func (s *Service) GetExpense(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	if err := s.validateExpense(expense); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, expense.ID)
	if err != nil {
		return nil, err
	}

	expense.CreatedAt = existing.CreatedAt
	expense.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

func (s *Service) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListExpenses(ctx context.Context) ([]*model.Expense, error) {
	expenses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

func (s *Service) validateExpense(expense *model.Expense) error {
	if !expense.Category.Valid() {
		return apperrors.NewValidation("invalid category")
	}
	if expense.Amount <= 0 {
		return apperrors.NewValidation("amount must be positive")
	}
	return nil
}
