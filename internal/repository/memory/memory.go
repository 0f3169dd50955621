// Package memory provides in-memory repository implementations. They back
// the package tests and serve as a throwaway store for local development
// without PostgreSQL. List preserves insertion order, matching the
// storage-natural order the API promises.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aniketdange3/dental-clinic-api/internal/model"
	"github.com/aniketdange3/dental-clinic-api/internal/repository"
	apperrors "github.com/aniketdange3/dental-clinic-api/pkg/errors"
)

type PatientRepository struct {
	mu       sync.RWMutex
	order    []uuid.UUID
	patients map[uuid.UUID]model.Patient
}

func NewPatientRepository() *PatientRepository {
	return &PatientRepository{patients: make(map[uuid.UUID]model.Patient)}
}

func (r *PatientRepository) Create(_ context.Context, patient *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients[patient.ID] = *patient
	r.order = append(r.order, patient.ID)
	return nil
}

func (r *PatientRepository) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	patient, ok := r.patients[id]
	if !ok {
		return nil, apperrors.NewNotFound("Patient")
	}
	return &patient, nil
}

func (r *PatientRepository) Update(_ context.Context, patient *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[patient.ID]; !ok {
		return apperrors.NewNotFound("Patient")
	}
	r.patients[patient.ID] = *patient
	return nil
}

func (r *PatientRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[id]; !ok {
		return apperrors.NewNotFound("Patient")
	}
	delete(r.patients, id)
	r.order = removeID(r.order, id)
	return nil
}

func (r *PatientRepository) List(_ context.Context) ([]*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	patients := make([]*model.Patient, 0, len(r.order))
	for _, id := range r.order {
		patient := r.patients[id]
		patients = append(patients, &patient)
	}
	return patients, nil
}

type InventoryRepository struct {
	mu    sync.RWMutex
	order []uuid.UUID
	items map[uuid.UUID]model.InventoryItem
}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{items: make(map[uuid.UUID]model.InventoryItem)}
}

func (r *InventoryRepository) Create(_ context.Context, item *model.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = *item
	r.order = append(r.order, item.ID)
	return nil
}

func (r *InventoryRepository) Get(_ context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, apperrors.NewNotFound("Inventory item")
	}
	return &item, nil
}

func (r *InventoryRepository) Update(_ context.Context, item *model.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return apperrors.NewNotFound("Inventory item")
	}
	r.items[item.ID] = *item
	return nil
}

func (r *InventoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperrors.NewNotFound("Inventory item")
	}
	delete(r.items, id)
	r.order = removeID(r.order, id)
	return nil
}

func (r *InventoryRepository) List(_ context.Context) ([]*model.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]*model.InventoryItem, 0, len(r.order))
	for _, id := range r.order {
		item := r.items[id]
		items = append(items, &item)
	}
	return items, nil
}

type ExpenseRepository struct {
	mu       sync.RWMutex
	order    []uuid.UUID
	expenses map[uuid.UUID]model.Expense
}

func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{expenses: make(map[uuid.UUID]model.Expense)}
}

func (r *ExpenseRepository) Create(_ context.Context, expense *model.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expenses[expense.ID] = *expense
	r.order = append(r.order, expense.ID)
	return nil
}

func (r *ExpenseRepository) Get(_ context.Context, id uuid.UUID) (*model.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	expense, ok := r.expenses[id]
	if !ok {
		return nil, apperrors.NewNotFound("Expense")
	}
	return &expense, nil
}

func (r *ExpenseRepository) Update(_ context.Context, expense *model.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.expenses[expense.ID]; !ok {
		return apperrors.NewNotFound("Expense")
	}
	r.expenses[expense.ID] = *expense
	return nil
}

func (r *ExpenseRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.expenses[id]; !ok {
		return apperrors.NewNotFound("Expense")
	}
	delete(r.expenses, id)
	r.order = removeID(r.order, id)
	return nil
}

func (r *ExpenseRepository) List(_ context.Context) ([]*model.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	expenses := make([]*model.Expense, 0, len(r.order))
	for _, id := range r.order {
		expense := r.expenses[id]
		expenses = append(expenses, &expense)
	}
	return expenses, nil
}

type OutboxRepository struct {
	mu     sync.Mutex
	events []*model.OutboxEvent
}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{}
}

func (r *OutboxRepository) Create(_ context.Context, event *model.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = uuid.New()
	event.Status = model.OutboxStatusPending
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	stored := *event
	r.events = append(r.events, &stored)
	return nil
}

func (r *OutboxRepository) GetPendingEvents(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pending []*model.OutboxEvent
	for _, evt := range r.events {
		if evt.Status != model.OutboxStatusPending {
			continue
		}
		copied := *evt
		pending = append(pending, &copied)
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (r *OutboxRepository) MarkProcessed(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, evt := range r.events {
		if evt.ID == id {
			evt.Status = model.OutboxStatusProcessed
			evt.UpdatedAt = time.Now()
			return nil
		}
	}
	return apperrors.NewNotFound("Outbox event")
}

func (r *OutboxRepository) MarkFailed(_ context.Context, id uuid.UUID, errMsg string, maxRetries int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, evt := range r.events {
		if evt.ID == id {
			evt.RetryCount++
			evt.ErrorMessage = &errMsg
			if evt.RetryCount >= maxRetries {
				evt.Status = model.OutboxStatusDeadLetter
			}
			evt.UpdatedAt = time.Now()
			return nil
		}
	}
	return apperrors.NewNotFound("Outbox event")
}

func (r *OutboxRepository) DeleteProcessedBefore(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*model.OutboxEvent
	var deleted int64
	for _, evt := range r.events {
		if evt.Status == model.OutboxStatusProcessed && evt.UpdatedAt.Before(before) {
			deleted++
			continue
		}
		kept = append(kept, evt)
	}
	r.events = kept
	return deleted, nil
}

func removeID(order []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, existing := range order {
		if existing == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// Interface checks
var (
	_ repository.PatientRepository   = (*PatientRepository)(nil)
	_ repository.InventoryRepository = (*InventoryRepository)(nil)
	_ repository.ExpenseRepository   = (*ExpenseRepository)(nil)
	_ repository.OutboxRepository    = (*OutboxRepository)(nil)
)
