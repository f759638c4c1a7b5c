package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/clinicdesk/clinicdesk/internal/domain/appointment"
	"github.com/clinicdesk/clinicdesk/internal/domain/prescription"
	"github.com/clinicdesk/clinicdesk/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatusChanger is the downstream trigger contract: issuing a prescription
// marks the visit completed, best-effort.
type StatusChanger interface {
	ChangeStatus(ctx context.Context, id uuid.UUID, status int) error
}

type PrescriptionService struct {
	repo         prescription.Repository
	appointments StatusChanger
	metrics      *metrics.Collector
	log          *zap.Logger
}

func NewPrescriptionService(repo prescription.Repository, appointments StatusChanger, collector *metrics.Collector, log *zap.Logger) *PrescriptionService {
	return &PrescriptionService{repo: repo, appointments: appointments, metrics: collector, log: log}
}

// Issue records the prescription, then advances the appointment to Completed.
// The status change is fire-and-forget: a failure is logged and never fails
// the prescription write.
func (s *PrescriptionService) Issue(ctx context.Context, cmd *prescription.IssuePrescriptionCommand) (*prescription.Prescription, error) {
	if strings.TrimSpace(cmd.Medication) == "" {
		return nil, prescription.ErrMedicationRequired
	}

	p := &prescription.Prescription{
		AppointmentID: cmd.AppointmentID,
		PatientName:   cmd.PatientName,
		Medication:    cmd.Medication,
		Dosage:        cmd.Dosage,
		DoctorNotes:   cmd.DoctorNotes,
		RefillCount:   cmd.RefillCount,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to save prescription", zap.Error(err))
		return nil, fmt.Errorf("saving prescription: %w", err)
	}
	s.metrics.PrescriptionsIssued.Inc()

	if cmd.AppointmentID != uuid.Nil {
		if err := s.appointments.ChangeStatus(ctx, cmd.AppointmentID, appointment.StatusCompleted); err != nil {
			s.log.Warn("failed to mark appointment completed after prescription",
				zap.String("appointment_id", cmd.AppointmentID.String()),
				zap.Error(err),
			)
		}
	}

	return p, nil
}

func (s *PrescriptionService) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*prescription.Prescription, error) {
	return s.repo.GetByAppointment(ctx, appointmentID)
}
