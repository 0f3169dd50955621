package view

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aniketdange3/dental-clinic-api/internal/client"
	"github.com/aniketdange3/dental-clinic-api/internal/model"
)

type PatientSortField string

const (
	PatientSortName PatientSortField = "name"
	PatientSortAge  PatientSortField = "age"
)

// Age bucket labels accepted by PatientFilter.AgeBucket.
const (
	AgeBucketChild  = "0-18"
	AgeBucketYoung  = "19-30"
	AgeBucketMiddle = "31-50"
	AgeBucketSenior = "51+"
)

// PatientFilter is a conjunction of predicates; zero values match all.
type PatientFilter struct {
	Gender    model.Gender
	AgeBucket string
	Name      string
}

func (f PatientFilter) matches(p *model.Patient) bool {
	if f.Gender != "" && p.Gender != f.Gender {
		return false
	}
	if f.AgeBucket != "" && !ageInBucket(p.Age, f.AgeBucket) {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Name)) {
		return false
	}
	return true
}

func ageInBucket(age int, bucket string) bool {
	switch bucket {
	case AgeBucketChild:
		return age >= 0 && age <= 18
	case AgeBucketYoung:
		return age >= 19 && age <= 30
	case AgeBucketMiddle:
		return age >= 31 && age <= 50
	case AgeBucketSenior:
		return age >= 51
	}
	return true
}

// PatientSummary is recomputed from the filtered set on every call.
type PatientSummary struct {
	Total    int
	ByGender map[model.Gender]int

	// Appointment tallies across the filtered patients.
	AppointmentsToday    int
	AppointmentsUpcoming int
}

// PatientsView mirrors the patient collection.
type PatientsView struct {
	client  *client.Client
	confirm Confirmer

	mu       sync.Mutex
	state    State
	lastErr  string
	busy     bool
	snapshot []*model.Patient

	sortField PatientSortField
	sortDir   model.SortDirection
	filter    PatientFilter
}

func NewPatientsView(c *client.Client, confirm Confirmer) *PatientsView {
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	return &PatientsView{
		client:    c,
		confirm:   confirm,
		state:     StateLoading,
		sortField: PatientSortName,
		sortDir:   model.Ascending,
	}
}

// Load fetches the collection and replaces the snapshot. On failure the
// view moves to StateErrored with an empty snapshot; there is no retry.
func (v *PatientsView) Load(ctx context.Context) error {
	patients, err := v.client.ListPatients(ctx)

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
	v.snapshot = patients
	return nil
}

func (v *PatientsView) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *PatientsView) LastError() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

func (v *PatientsView) beginWrite() error {
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

func (v *PatientsView) endWrite() {
	v.mu.Lock()
	v.busy = false
	v.mu.Unlock()
}

// Create issues the write and appends the server-confirmed record.
func (v *PatientsView) Create(ctx context.Context, req *model.PatientRequest) (*model.Patient, error) {
	if err := v.beginWrite(); err != nil {
		return nil, err
	}
	defer v.endWrite()

	created, err := v.client.CreatePatient(ctx, req)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.snapshot = append(v.snapshot, created)
	v.mu.Unlock()
	return created, nil
}

// Update issues the write and replaces the snapshot entry by identity.
func (v *PatientsView) Update(ctx context.Context, id uuid.UUID, req *model.PatientRequest) (*model.Patient, error) {
	if err := v.beginWrite(); err != nil {
		return nil, err
	}
	defer v.endWrite()

	updated, err := v.client.UpdatePatient(ctx, id, req)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	for i, p := range v.snapshot {
		if p.ID == id {
			v.snapshot[i] = updated
			break
		}
	}
	v.mu.Unlock()
	return updated, nil
}

// Delete asks the confirmer first; a declined prompt aborts before any
// request is issued.
func (v *PatientsView) Delete(ctx context.Context, id uuid.UUID) error {
	if !v.confirm.Confirm("Are you sure you want to delete this patient?") {
		return ErrDeclined
	}
	if err := v.beginWrite(); err != nil {
		return err
	}
	defer v.endWrite()

	if err := v.client.DeletePatient(ctx, id); err != nil {
		return err
	}

	v.mu.Lock()
	for i, p := range v.snapshot {
		if p.ID == id {
			v.snapshot = append(v.snapshot[:i], v.snapshot[i+1:]...)
			break
		}
	}
	v.mu.Unlock()
	return nil
}

// ToggleSort flips the direction when the field is already selected,
// otherwise switches to the field in ascending order.
func (v *PatientsView) ToggleSort(field PatientSortField) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sortField == field {
		v.sortDir = v.sortDir.Flip()
		return
	}
	v.sortField = field
	v.sortDir = model.Ascending
}

func (v *PatientsView) Sort() (PatientSortField, model.SortDirection) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sortField, v.sortDir
}

func (v *PatientsView) SetFilter(f PatientFilter) {
	v.mu.Lock()
	v.filter = f
	v.mu.Unlock()
}

// Records derives the current projection: a stable sort of the snapshot,
// ties kept in snapshot order, then the filter conjunction.
func (v *PatientsView) Records() []*model.Patient {
	v.mu.Lock()
	sorted := make([]*model.Patient, len(v.snapshot))
	copy(sorted, v.snapshot)
	field, dir, filter := v.sortField, v.sortDir, v.filter
	v.mu.Unlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		var less bool
		switch field {
		case PatientSortAge:
			if a.Age == b.Age {
				return false
			}
			less = a.Age < b.Age
		default:
			na, nb := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if na == nb {
				return false
			}
			less = na < nb
		}
		if dir == model.Descending {
			return !less
		}
		return less
	})

	out := make([]*model.Patient, 0, len(sorted))
	for _, p := range sorted {
		if filter.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Summary tallies the filtered set in one pass.
func (v *PatientsView) Summary() PatientSummary {
	return v.SummaryAt(time.Now())
}

// SummaryAt is Summary with an explicit clock for the appointment tallies.
func (v *PatientsView) SummaryAt(now time.Time) PatientSummary {
	summary := PatientSummary{ByGender: make(map[model.Gender]int)}
	for _, p := range v.Records() {
		summary.Total++
		if p.Gender != "" {
			summary.ByGender[p.Gender]++
		}
		for _, appt := range p.Appointments {
			switch {
			case appt.Date.IsZero():
			case sameDay(appt.Date.Time, now):
				summary.AppointmentsToday++
			case appt.Date.After(now):
				summary.AppointmentsUpcoming++
			}
		}
	}
	return summary
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// NextAppointment returns the earliest appointment on or after now, or
// nil when none is scheduled.
func NextAppointment(p *model.Patient, now time.Time) *model.Appointment {
	var next *model.Appointment
	for i := range p.Appointments {
		appt := &p.Appointments[i]
		if appt.Date.IsZero() || appt.Date.Before(now) {
			continue
		}
		if next == nil || appt.Date.Before(next.Date.Time) {
			next = appt
		}
	}
	return next
}
