package service

import (
	"context"
	"errors"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain/appointment"
	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/google/uuid"
)

// BookingValidator decides whether a requested booking is admissible: the
// doctor must exist and the requested time must land exactly on the start of
// one of the doctor's free slots for that day. The check is pure and is re-run
// at commit time, because availability can change between check and write.
type BookingValidator struct {
	doctorRepo   doctor.Repository
	availability *AvailabilityService
}

func NewBookingValidator(doctorRepo doctor.Repository, availability *AvailabilityService) *BookingValidator {
	return &BookingValidator{doctorRepo: doctorRepo, availability: availability}
}

// Validate returns nil for an admissible request, doctor.ErrDoctorNotFound
// for an unknown doctor, and appointment.ErrTimeUnavailable for everything
// else. A structurally empty request (no doctor, no time) is a generic
// rejection, not a distinct error.
func (v *BookingValidator) Validate(ctx context.Context, doctorID uuid.UUID, requested time.Time) error {
	if doctorID == uuid.Nil || requested.IsZero() {
		return appointment.ErrTimeUnavailable
	}

	if _, err := v.doctorRepo.GetByID(ctx, doctorID); err != nil {
		if errors.Is(err, doctor.ErrDoctorNotFound) {
			return doctor.ErrDoctorNotFound
		}
		return appointment.ErrTimeUnavailable
	}

	free := v.availability.FreeSlots(ctx, doctorID, requested)
	if len(free) == 0 {
		return appointment.ErrTimeUnavailable
	}

	// Minute-precision match on the slot start; a request inside a slot but
	// off its boundary is rejected, never treated as a partial overlap.
	for _, slot := range free {
		if slot.StartsAtClock(requested) {
			return nil
		}
	}
	return appointment.ErrTimeUnavailable
}
