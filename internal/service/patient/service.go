package patient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aniketdange3/dental-clinic-api/internal/model"
	"github.com/aniketdange3/dental-clinic-api/internal/repository"
	apperrors "github.com/aniketdange3/dental-clinic-api/pkg/errors"
	"github.com/aniketdange3/dental-clinic-api/pkg/security"
)

type PatientService interface {
	CreatePatient(ctx context.Context, patient *model.Patient) (*model.Patient, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	UpdatePatient(ctx context.Context, patient *model.Patient) (*model.Patient, error)
	DeletePatient(ctx context.Context, id uuid.UUID) error
	ListPatients(ctx context.Context) ([]*model.Patient, error)
}

type Service struct {
	repo      repository.PatientRepository
	encryptor security.Encryptor
}

// NewService builds the patient service. The encryptor seals medical
// history at rest and may be nil, in which case history is stored as-is.
func NewService(repo repository.PatientRepository, encryptor security.Encryptor) *Service {
	return &Service{repo: repo, encryptor: encryptor}
}

func (s *Service) CreatePatient(ctx context.Context, patient *model.Patient) (*model.Patient, error) {
	if err := s.validatePatient(patient); err != nil {
		return nil, err
	}

	patient.ID = uuid.New()
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()
	if patient.Appointments == nil {
		patient.Appointments = []model.Appointment{}
	}

	if err := s.marshalStoredFields(patient); err != nil {
		return nil, fmt.Errorf("failed to marshal patient fields: %w", err)
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.unmarshalStoredFields(patient); err != nil {
		return nil, fmt.Errorf("failed to unmarshal patient fields: %w", err)
	}

	return patient, nil
}

// UpdatePatient replaces the full document; the appointments list is
// rewritten wholesale, never patched.
func (s *Service) UpdatePatient(ctx context.Context, patient *model.Patient) (*model.Patient, error) {
	if err := s.validatePatient(patient); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, patient.ID)
	if err != nil {
		return nil, err
	}

	patient.CreatedAt = existing.CreatedAt
	patient.UpdatedAt = time.Now()
	if patient.Appointments == nil {
		patient.Appointments = []model.Appointment{}
	}

	if err := s.marshalStoredFields(patient); err != nil {
		return nil, fmt.Errorf("failed to marshal patient fields: %w", err)
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}

	return patient, nil
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	for _, patient := range patients {
		if err := s.unmarshalStoredFields(patient); err != nil {
			return nil, fmt.Errorf("failed to unmarshal patient %s: %w", patient.ID, err)
		}
	}

	return patients, nil
}

func (s *Service) validatePatient(patient *model.Patient) error {
	if patient.Name == "" {
		return apperrors.NewValidation("name is required")
	}
	if patient.Contact == "" {
		return apperrors.NewValidation("contact is required")
	}
	if patient.Age < 0 {
		return apperrors.NewValidation("age cannot be negative")
	}
	if !patient.Gender.Valid() {
		return apperrors.NewValidation("invalid gender")
	}
	for _, appt := range patient.Appointments {
		if appt.Date.IsZero() {
			return apperrors.NewValidation("appointment date is required")
		}
	}
	return nil
}

func (s *Service) marshalStoredFields(patient *model.Patient) error {
	data, err := json.Marshal(patient.Appointments)
	if err != nil {
		return err
	}
	patient.AppointmentsJSON = string(data)

	if s.encryptor == nil {
		patient.MedicalHistoryEnc = patient.MedicalHistory
		return nil
	}
	sealed, err := security.EncryptString(s.encryptor, patient.MedicalHistory)
	if err != nil {
		return err
	}
	patient.MedicalHistoryEnc = sealed
	return nil
}

func (s *Service) unmarshalStoredFields(patient *model.Patient) error {
	patient.Appointments = []model.Appointment{}
	if patient.AppointmentsJSON != "" {
		if err := json.Unmarshal([]byte(patient.AppointmentsJSON), &patient.Appointments); err != nil {
			return err
		}
	}

	if s.encryptor == nil {
		patient.MedicalHistory = patient.MedicalHistoryEnc
		return nil
	}
	if patient.MedicalHistoryEnc == "" {
		patient.MedicalHistory = ""
		return nil
	}
	plain, err := security.DecryptString(s.encryptor, patient.MedicalHistoryEnc)
	if err != nil {
		return err
	}
	patient.MedicalHistory = plain
	return nil
}
