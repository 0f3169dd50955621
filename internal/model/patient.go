package model

// Gender is the fixed enumeration for the patient gender field.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Genders returns the allowed gender values in display order.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOther}
}

// Appointment is an embedded sub-document of Patient. The slice order is
// the display order; entries are only ever replaced wholesale on update.
type Appointment struct {
	Date    Timestamp `json:"date"`
	Purpose string    `json:"purpose"`
}

type Patient struct {
	Base
	Name           string        `db:"name" json:"name"`
	Contact        string        `db:"contact" json:"contact"`
	Age            int           `db:"age" json:"age"`
	Gender         Gender        `db:"gender" json:"gender"`
	MedicalHistory string        `db:"-" json:"medicalHistory"`
	Appointments   []Appointment `db:"-" json:"appointments"`

	// Storage-side projections of the fields above. MedicalHistoryEnc is
	// the AES-sealed history, AppointmentsJSON the serialized sub-documents.
	MedicalHistoryEnc string `db:"medical_history" json:"-"`
	AppointmentsJSON  string `db:"appointments" json:"-"`
}

// PatientRequest carries the full field set for both Create and Update;
// updates are full-document replaces, validated identically.
type PatientRequest struct {
	Name           string        `json:"name" binding:"required"`
	Contact        string        `json:"contact" binding:"required"`
	Age            *int          `json:"age" binding:"required,gte=0"`
	Gender         Gender        `json:"gender" binding:"required,gender"`
	MedicalHistory string        `json:"medicalHistory"`
	Appointments   []Appointment `json:"appointments"`
}

// Patient builds the model record from the request fields.
func (r *PatientRequest) Patient() *Patient {
	age := 0
	if r.Age != nil {
		age = *r.Age
	}
	return &Patient{
		Name:           r.Name,
		Contact:        r.Contact,
		Age:            age,
		Gender:         r.Gender,
		MedicalHistory: r.MedicalHistory,
		Appointments:   r.Appointments,
	}
}
