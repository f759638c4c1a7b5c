package prescription

import (
	"time"

	"github.com/google/uuid"
)

// Prescription is written by a doctor against a completed visit. Recording one
// advances the appointment to Completed as a best-effort side effect.
type Prescription struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	AppointmentID uuid.UUID `gorm:"column:appointment_id;type:uuid;not null;index"`
	PatientName   string    `gorm:"column:patient_name;type:varchar(100);not null"`

	Medication   string `gorm:"column:medication;type:varchar(255);not null"`
	Dosage       string `gorm:"column:dosage;type:varchar(100);not null"`
	DoctorNotes  string `gorm:"column:doctor_notes;type:text"`
	RefillCount  int    `gorm:"column:refill_count;not null;default:0"`
}

func (Prescription) TableName() string {
	return "clinic.prescriptions"
}

type IssuePrescriptionCommand struct {
	AppointmentID uuid.UUID
	PatientName   string
	Medication    string
	Dosage        string
	DoctorNotes   string
	RefillCount   int
}
