package service

import (
	"context"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain/appointment"
	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityService computes a doctor's bookable windows. Both read paths
// fail closed: any lookup error degrades to "no availability" instead of
// propagating, so a consumer of the slot list never crashes on a storage
// hiccup.
type AvailabilityService struct {
	doctorRepo doctor.Repository
	apptRepo   appointment.Repository
	log        *zap.Logger
}

func NewAvailabilityService(doctorRepo doctor.Repository, apptRepo appointment.Repository, log *zap.Logger) *AvailabilityService {
	return &AvailabilityService{doctorRepo: doctorRepo, apptRepo: apptRepo, log: log}
}

// TemplateSlots returns the doctor's advertised windows, ascending by start.
// An unknown doctor yields an empty slice.
func (s *AvailabilityService) TemplateSlots(ctx context.Context, doctorID uuid.UUID) []doctor.Slot {
	d, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return nil
	}
	return d.TemplateSlots()
}

// FreeSlots subtracts the doctor's booked windows on the given calendar day
// from the template. A booked window is the appointment's start time plus one
// hour rendered as "HH:mm-HH:mm"; subtraction is exact string match on that
// rendering, not interval overlap. Unparseable template windows never match a
// booking and sort last.
func (s *AvailabilityService) FreeSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) []doctor.Slot {
	d, err := s.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		return nil
	}

	template := d.TemplateSlots()
	if len(template) == 0 {
		return nil
	}

	from, to := dayBounds(date)
	booked, err := s.apptRepo.ListForDoctorBetween(ctx, doctorID, from, to)
	if err != nil {
		s.log.Warn("failed to load appointments for availability, reporting none",
			zap.String("doctor_id", doctorID.String()),
			zap.Error(err),
		)
		return nil
	}

	taken := make(map[string]struct{}, len(booked))
	for _, a := range booked {
		taken[doctor.SlotForTime(a.AppointmentTime).String()] = struct{}{}
	}

	free := make([]doctor.Slot, 0, len(template))
	for _, slot := range template {
		if _, ok := taken[slot.String()]; ok {
			continue
		}
		free = append(free, slot)
	}
	return free
}

// dayBounds returns the inclusive [00:00:00, 23:59:59] range of date's local
// calendar day. No timezone conversion: the clinic runs on one calendar.
func dayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	to := time.Date(y, m, d, 23, 59, 59, 0, date.Location())
	return from, to
}
