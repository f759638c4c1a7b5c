package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new appointment. Returns ErrSlotTaken when the
	// (doctor, time) uniqueness constraint rejects the write; a race between
	// two bookings for the same slot resolves here.
	Create(ctx context.Context, a *Appointment) error

	// GetByID returns ErrAppointmentNotFound if the id is unknown.
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// Save overwrites an existing row. Returns ErrSlotTaken on a uniqueness
	// violation, as Create does.
	Save(ctx context.Context, a *Appointment) error

	// Delete hard-deletes the row; cancellation has no tombstone status.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByDoctor removes every appointment for a doctor. Used when a
	// doctor record is deleted.
	DeleteByDoctor(ctx context.Context, doctorID uuid.UUID) error

	// ListForDoctorBetween returns a doctor's appointments with
	// appointment_time in [from, to] inclusive, ordered by time.
	ListForDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*Appointment, error)

	// ListForDoctorDay is ListForDoctorBetween narrowed by an optional
	// patient-name substring.
	ListForDoctorDay(ctx context.Context, q *DoctorDayQuery) ([]*Appointment, error)

	// ListForPatient returns a patient's appointments with optional
	// doctor-name and status predicates.
	ListForPatient(ctx context.Context, q *PatientQuery) ([]*Appointment, error)
}
