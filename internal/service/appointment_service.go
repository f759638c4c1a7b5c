package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain"
	"github.com/clinicdesk/clinicdesk/internal/domain/appointment"
	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// doctorLocks serializes validate-then-write sequences per doctor. The map is
// bounded by the number of distinct doctors seen by this process; entries are
// never evicted.
type doctorLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newDoctorLocks() *doctorLocks {
	return &doctorLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (l *doctorLocks) forDoctor(id uuid.UUID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

// AppointmentService owns the appointment lifecycle: book, update, cancel,
// status changes, and the doctor-facing day view. Callers arrive
// pre-authorized by the authorization gate; ownership checks that depend on
// the stored row happen here.
type AppointmentService struct {
	repo        appointment.Repository
	doctorRepo  doctor.Repository
	patientRepo patient.Repository
	validator   *BookingValidator
	auditSvc    *AuditService
	bookingLock *doctorLocks
	metrics     *metrics.Collector
	log         *zap.Logger
}

func NewAppointmentService(
	repo appointment.Repository,
	doctorRepo doctor.Repository,
	patientRepo patient.Repository,
	validator *BookingValidator,
	auditSvc *AuditService,
	collector *metrics.Collector,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:        repo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		validator:   validator,
		auditSvc:    auditSvc,
		bookingLock: newDoctorLocks(),
		metrics:     collector,
		log:         log,
	}
}

// Book validates the request against the doctor's free slots and persists it
// with status Scheduled. The per-doctor lock holds across validate-then-write
// so two concurrent requests for the same slot cannot both pass validation;
// the (doctor, time) uniqueness constraint backstops writers outside this
// process, surfacing as ErrTimeUnavailable.
func (s *AppointmentService) Book(ctx context.Context, cmd *appointment.BookAppointmentCommand, caller *domain.Claims) (*appointment.Appointment, error) {
	if cmd.DoctorID != uuid.Nil {
		lock := s.bookingLock.forDoctor(cmd.DoctorID)
		lock.Lock()
		defer lock.Unlock()
	}

	if err := s.validator.Validate(ctx, cmd.DoctorID, cmd.AppointmentTime); err != nil {
		s.metrics.BookingsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	a := &appointment.Appointment{
		DoctorID:        cmd.DoctorID,
		PatientID:       cmd.PatientID,
		AppointmentTime: cmd.AppointmentTime,
		Status:          appointment.StatusScheduled,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, appointment.ErrSlotTaken) {
			s.metrics.BookingsTotal.WithLabelValues("conflict").Inc()
			return nil, appointment.ErrTimeUnavailable
		}
		s.metrics.BookingsTotal.WithLabelValues("error").Inc()
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	s.metrics.BookingsTotal.WithLabelValues("booked").Inc()
	s.audit(caller, domain.ActionCreate, a.ID, "")
	return a, nil
}

// Update rebooks an existing appointment onto a new doctor and/or time. Only
// the owning patient may do so, and only the doctor/time fields move;
// identity and status are preserved. The new target is validated exactly as a
// fresh booking would be, which means moving an appointment onto its own
// current slot reports the slot as taken.
func (s *AppointmentService) Update(ctx context.Context, id uuid.UUID, cmd *appointment.UpdateAppointmentCommand, caller *domain.Claims) (*appointment.Appointment, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.PatientID == uuid.Nil || existing.PatientID != cmd.PatientID {
		return nil, ErrAccessDenied
	}

	if cmd.DoctorID != uuid.Nil {
		lock := s.bookingLock.forDoctor(cmd.DoctorID)
		lock.Lock()
		defer lock.Unlock()
	}

	if err := s.validator.Validate(ctx, cmd.DoctorID, cmd.AppointmentTime); err != nil {
		return nil, err
	}

	existing.DoctorID = cmd.DoctorID
	existing.AppointmentTime = cmd.AppointmentTime

	if err := s.repo.Save(ctx, existing); err != nil {
		if errors.Is(err, appointment.ErrSlotTaken) {
			return nil, appointment.ErrTimeUnavailable
		}
		return nil, fmt.Errorf("updating appointment: %w", err)
	}

	s.audit(caller, domain.ActionUpdate, existing.ID, existing.AppointmentTime.Format(time.RFC3339))
	return existing, nil
}

// Cancel hard-deletes the appointment. The caller's verified identity must
// match the owning patient's email, compared case-insensitively. Status is
// deliberately not consulted: a completed appointment can still be cancelled.
func (s *AppointmentService) Cancel(ctx context.Context, id uuid.UUID, caller *domain.Claims) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	owner, err := s.patientRepo.GetByID(ctx, existing.PatientID)
	if err != nil || owner.Email == "" || !strings.EqualFold(owner.Email, caller.Subject) {
		return ErrAccessDenied
	}

	if err := s.repo.Delete(ctx, existing.ID); err != nil {
		return fmt.Errorf("cancelling appointment: %w", err)
	}

	s.metrics.BookingsTotal.WithLabelValues("cancelled").Inc()
	s.audit(caller, domain.ActionDelete, existing.ID, "")
	return nil
}

// ChangeStatus overwrites the status field with whatever integer the caller
// supplies. No transition table is enforced; downstream triggers rely on
// being able to set any value.
func (s *AppointmentService) ChangeStatus(ctx context.Context, id uuid.UUID, status int) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	existing.Status = status
	if err := s.repo.Save(ctx, existing); err != nil {
		return fmt.Errorf("changing appointment status: %w", err)
	}
	return nil
}

// DoctorDay is the doctor's agenda view: all appointments for the verified
// doctor identity on the given calendar day, optionally narrowed by a
// patient-name substring. An identity with no doctor record, or any storage
// failure, yields an empty agenda rather than an error.
func (s *AppointmentService) DoctorDay(ctx context.Context, doctorEmail string, date time.Time, patientName string) ([]*appointment.Appointment, int) {
	d, err := s.doctorRepo.GetByEmail(ctx, doctorEmail)
	if err != nil {
		return nil, 0
	}

	from, to := dayBounds(date)
	appts, err := s.repo.ListForDoctorDay(ctx, &appointment.DoctorDayQuery{
		DoctorID:    d.ID,
		From:        from,
		To:          to,
		PatientName: strings.TrimSpace(patientName),
	})
	if err != nil {
		s.log.Warn("failed to load doctor agenda, reporting empty",
			zap.String("doctor_id", d.ID.String()),
			zap.Error(err),
		)
		return nil, 0
	}
	return appts, len(appts)
}

func (s *AppointmentService) Get(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentService) audit(caller *domain.Claims, action domain.AuditAction, apptID uuid.UUID, detail string) {
	if s.auditSvc == nil || caller == nil {
		return
	}
	s.auditSvc.Record(&domain.AuditLog{
		Subject:      caller.Subject,
		Role:         caller.Role,
		Action:       action,
		ResourceType: "appointment",
		ResourceID:   apptID.String(),
		Detail:       detail,
	})
}
