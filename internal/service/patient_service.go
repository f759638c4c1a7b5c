package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/clinicdesk/clinicdesk/internal/domain/appointment"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// PatientService covers patient registration and the patient's own
// appointment history, filtered by doctor name and/or visit condition.
type PatientService struct {
	repo     patient.Repository
	apptRepo appointment.Repository
	log      *zap.Logger
}

func NewPatientService(repo patient.Repository, apptRepo appointment.Repository, log *zap.Logger) *PatientService {
	return &PatientService{repo: repo, apptRepo: apptRepo, log: log}
}

func (s *PatientService) Register(ctx context.Context, cmd *patient.RegisterPatientCommand) (*patient.Patient, error) {
	var fields []string
	if strings.TrimSpace(cmd.Name) == "" {
		fields = append(fields, "name is required")
	}
	if strings.TrimSpace(cmd.Email) == "" && strings.TrimSpace(cmd.Phone) == "" {
		fields = append(fields, "email or phone is required")
	}
	if cmd.Password == "" {
		fields = append(fields, "password is required")
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	exists, err := s.repo.ExistsByEmailOrPhone(ctx, cmd.Email, cmd.Phone)
	if err != nil {
		return nil, fmt.Errorf("checking patient uniqueness: %w", err)
	}
	if exists {
		return nil, patient.ErrPatientAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	p := &patient.Patient{
		Name:         cmd.Name,
		Email:        cmd.Email,
		Phone:        cmd.Phone,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to register patient", zap.Error(err))
		return nil, fmt.Errorf("registering patient: %w", err)
	}
	return p, nil
}

func (s *PatientService) GetByEmail(ctx context.Context, email string) (*patient.Patient, error) {
	return s.repo.GetByEmail(ctx, email)
}

// MyAppointments lists the verified patient's own appointments. Condition
// buckets history by status: "past" means Completed, "future" means
// Scheduled, anything else means no status filter. The identity must resolve
// to a known patient; the appointment fetch itself degrades to empty on
// failure like every read path.
func (s *PatientService) MyAppointments(ctx context.Context, patientEmail, doctorName, condition string) ([]*appointment.Appointment, error) {
	p, err := s.repo.GetByEmail(ctx, patientEmail)
	if err != nil {
		return nil, err
	}

	q := &appointment.PatientQuery{
		PatientID:  p.ID,
		DoctorName: strings.TrimSpace(doctorName),
	}
	switch strings.ToLower(strings.TrimSpace(condition)) {
	case "past":
		status := appointment.StatusCompleted
		q.Status = &status
	case "future":
		status := appointment.StatusScheduled
		q.Status = &status
	}

	appts, err := s.apptRepo.ListForPatient(ctx, q)
	if err != nil {
		s.log.Warn("failed to load patient appointments, reporting empty",
			zap.String("patient_id", p.ID.String()),
			zap.Error(err),
		)
		return nil, nil
	}
	return appts, nil
}
