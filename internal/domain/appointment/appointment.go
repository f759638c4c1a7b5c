package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Status is a bare integer column. The core only produces Scheduled and
// Completed; ChangeStatus accepts any value the caller supplies, matching the
// behavior the downstream triggers depend on.
const (
	StatusScheduled = 0
	StatusCompleted = 1
)

// Appointment books one patient with one doctor for a one-hour window
// starting at AppointmentTime. There is no cancelled status: cancellation
// deletes the row.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	DoctorID  uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index;uniqueIndex:uq_appointments_doctor_time"`
	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`

	AppointmentTime time.Time `gorm:"column:appointment_time;not null;uniqueIndex:uq_appointments_doctor_time"`
	Status          int       `gorm:"column:status;not null;default:0;index"`
}

func (Appointment) TableName() string {
	return "clinic.appointments"
}

// EndsAt assumes the conventional one-hour duration.
func (a *Appointment) EndsAt() time.Time {
	return a.AppointmentTime.Add(time.Hour)
}

type BookAppointmentCommand struct {
	DoctorID        uuid.UUID
	PatientID       uuid.UUID
	AppointmentTime time.Time
}

// UpdateAppointmentCommand carries the mutable fields of a booking. PatientID
// identifies the caller-supplied owner and must match the stored one.
type UpdateAppointmentCommand struct {
	PatientID       uuid.UUID
	DoctorID        uuid.UUID
	AppointmentTime time.Time
}

// DoctorDayQuery selects one doctor's appointments within a single calendar
// day, optionally narrowed by a patient-name substring.
type DoctorDayQuery struct {
	DoctorID    uuid.UUID
	From        time.Time
	To          time.Time
	PatientName string // case-insensitive substring, empty means no filter
}

// PatientQuery selects a patient's own appointments, optionally narrowed by
// doctor name and/or status.
type PatientQuery struct {
	PatientID  uuid.UUID
	DoctorName string // case-insensitive substring, empty means no filter
	Status     *int
}
