package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/clinicdesk/clinicdesk/internal/domain/appointment"
	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DoctorService manages the doctor directory: registration, upkeep, removal,
// and the parameterized directory search. Each filter predicate is
// independently optional; the AM/PM bucket is judged on template slot starts.
type DoctorService struct {
	repo     doctor.Repository
	apptRepo appointment.Repository
	log      *zap.Logger
}

func NewDoctorService(repo doctor.Repository, apptRepo appointment.Repository, log *zap.Logger) *DoctorService {
	return &DoctorService{repo: repo, apptRepo: apptRepo, log: log}
}

func (s *DoctorService) Create(ctx context.Context, cmd *doctor.CreateDoctorCommand) (*doctor.Doctor, error) {
	var fields []string
	if strings.TrimSpace(cmd.Name) == "" {
		fields = append(fields, "name is required")
	}
	if strings.TrimSpace(cmd.Email) == "" {
		fields = append(fields, "email is required")
	}
	if cmd.Password == "" {
		fields = append(fields, "password is required")
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if err := doctor.ValidateTemplate(cmd.AvailableTimes); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(ctx, cmd.Email); err == nil && existing != nil {
		return nil, doctor.ErrDoctorAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	d := &doctor.Doctor{
		Name:           cmd.Name,
		Specialty:      cmd.Specialty,
		Email:          cmd.Email,
		Phone:          cmd.Phone,
		PasswordHash:   string(hash),
		AvailableTimes: cmd.AvailableTimes,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.log.Error("failed to create doctor", zap.Error(err))
		return nil, fmt.Errorf("creating doctor: %w", err)
	}
	return d, nil
}

func (s *DoctorService) Update(ctx context.Context, id uuid.UUID, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		d.Name = *cmd.Name
	}
	if cmd.Specialty != nil {
		d.Specialty = *cmd.Specialty
	}
	if cmd.Phone != nil {
		d.Phone = *cmd.Phone
	}
	if cmd.AvailableTimes != nil {
		if err := doctor.ValidateTemplate(*cmd.AvailableTimes); err != nil {
			return nil, err
		}
		d.AvailableTimes = *cmd.AvailableTimes
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("updating doctor: %w", err)
	}
	return d, nil
}

// Delete removes a doctor and every appointment booked with them.
func (s *DoctorService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.apptRepo.DeleteByDoctor(ctx, id); err != nil {
		return fmt.Errorf("deleting doctor appointments: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting doctor: %w", err)
	}
	return nil
}

func (s *DoctorService) Get(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

// Find runs the directory search. Name and specialty narrow the stored query;
// the AM/PM period is applied here over each doctor's template. Any storage
// failure degrades to an empty directory.
func (s *DoctorService) Find(ctx context.Context, q *doctor.ListDoctorsQuery) []*doctor.Doctor {
	doctors, err := s.repo.List(ctx, q)
	if err != nil {
		s.log.Warn("failed to list doctors, reporting none", zap.Error(err))
		return nil
	}

	period := strings.ToUpper(strings.TrimSpace(q.Period))
	if period != "AM" && period != "PM" {
		return doctors
	}

	filtered := doctors[:0]
	for _, d := range doctors {
		if period == "AM" && d.WorksMornings() {
			filtered = append(filtered, d)
		}
		if period == "PM" && d.WorksAfternoons() {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
