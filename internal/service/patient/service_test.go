package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniketdange3/dental-clinic-api/internal/model"
	"github.com/aniketdange3/dental-clinic-api/internal/repository/memory"
	apperrors "github.com/aniketdange3/dental-clinic-api/pkg/errors"
	"github.com/aniketdange3/dental-clinic-api/pkg/security"
)

func validPatient() *model.Patient {
	return &model.Patient{
		Name:           "John Doe",
		Contact:        "1234567890",
		Age:            34,
		Gender:         model.GenderMale,
		MedicalHistory: "No known allergies",
		Appointments: []model.Appointment{
			{Date: model.Timestamp{Time: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)}, Purpose: "Cleaning"},
		},
	}
}

func TestCreatePatient(t *testing.T) {
	svc := NewService(memory.NewPatientRepository(), nil)

	created, err := svc.CreatePatient(context.Background(), validPatient())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Len(t, created.Appointments, 1)

	found, err := svc.GetPatient(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", found.Name)
	assert.Equal(t, "No known allergies", found.MedicalHistory)
	require.Len(t, found.Appointments, 1)
	assert.Equal(t, "Cleaning", found.Appointments[0].Purpose)
}

func TestCreatePatientValidation(t *testing.T) {
	svc := NewService(memory.NewPatientRepository(), nil)

	tests := []struct {
		name   string
		mutate func(*model.Patient)
	}{
		{"missing name", func(p *model.Patient) { p.Name = "" }},
		{"missing contact", func(p *model.Patient) { p.Contact = "" }},
		{"negative age", func(p *model.Patient) { p.Age = -1 }},
		{"invalid gender", func(p *model.Patient) { p.Gender = "Unknown" }},
		{"appointment without date", func(p *model.Patient) {
			p.Appointments = []model.Appointment{{Purpose: "Checkup"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPatient()
			tt.mutate(p)
			_, err := svc.CreatePatient(context.Background(), p)
			assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestCreatePatientZeroAge(t *testing.T) {
	svc := NewService(memory.NewPatientRepository(), nil)

	p := validPatient()
	p.Age = 0
	created, err := svc.CreatePatient(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 0, created.Age)
}

func TestUpdatePatient(t *testing.T) {
	svc := NewService(memory.NewPatientRepository(), nil)

	created, err := svc.CreatePatient(context.Background(), validPatient())
	require.NoError(t, err)
	createdAt := created.CreatedAt

	replacement := validPatient()
	replacement.ID = created.ID
	replacement.Name = "Jane Doe"
	replacement.Appointments = nil

	updated, err := svc.UpdatePatient(context.Background(), replacement)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", updated.Name)
	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.Empty(t, updated.Appointments)
}

func TestUpdatePatientNotFound(t *testing.T) {
	svc := NewService(memory.NewPatientRepository(), nil)

	p := validPatient()
	p.ID = uuid.New()
	_, err := svc.UpdatePatient(context.Background(), p)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetPatientNotFound(t *testing.T) {
	svc := NewService(memory.NewPatientRepository(), nil)

	_, err := svc.GetPatient(context.Background(), uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeletePatient(t *testing.T) {
	svc := NewService(memory.NewPatientRepository(), nil)

	created, err := svc.CreatePatient(context.Background(), validPatient())
	require.NoError(t, err)

	require.NoError(t, svc.DeletePatient(context.Background(), created.ID))
	err = svc.DeletePatient(context.Background(), created.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListPatientsEmpty(t *testing.T) {
	svc := NewService(memory.NewPatientRepository(), nil)

	patients, err := svc.ListPatients(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, patients)
	assert.Empty(t, patients)
}

func TestMedicalHistoryEncryptedAtRest(t *testing.T) {
	repo := memory.NewPatientRepository()
	encryptor, err := security.NewAESEncryptor([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	svc := NewService(repo, encryptor)

	created, err := svc.CreatePatient(context.Background(), validPatient())
	require.NoError(t, err)

	stored, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.MedicalHistoryEnc)
	assert.NotEqual(t, "No known allergies", stored.MedicalHistoryEnc)

	found, err := svc.GetPatient(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "No known allergies", found.MedicalHistory)
}
