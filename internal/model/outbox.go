package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "PENDING"
	OutboxStatusProcessed  OutboxStatus = "PROCESSED"
	OutboxStatusDeadLetter OutboxStatus = "DEAD_LETTER"
)

// Record change event types, one per collection and operation.
const (
	EventPatientCreate   = "PATIENT_CREATE"
	EventPatientUpdate   = "PATIENT_UPDATE"
	EventPatientDelete   = "PATIENT_DELETE"
	EventInventoryCreate = "INVENTORY_CREATE"
	EventInventoryUpdate = "INVENTORY_UPDATE"
	EventInventoryDelete = "INVENTORY_DELETE"
	EventExpenseCreate   = "EXPENSE_CREATE"
	EventExpenseUpdate   = "EXPENSE_UPDATE"
	EventExpenseDelete   = "EXPENSE_DELETE"
)

type OutboxEvent struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	EventType    string          `db:"event_type" json:"event_type"`
	Payload      json.RawMessage `db:"payload" json:"payload"`
	Status       OutboxStatus    `db:"status" json:"status"`
	ErrorMessage *string         `db:"error_message" json:"error_message,omitempty"`
	RetryCount   int             `db:"retry_count" json:"retry_count"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}
