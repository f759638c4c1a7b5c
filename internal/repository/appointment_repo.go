package repository

import (
	"context"
	"errors"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain/appointment"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) appointment.Repository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return appointment.ErrSlotTaken
	}
	return err
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appointment.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepository) Save(ctx context.Context, a *appointment.Appointment) error {
	err := r.db.WithContext(ctx).Save(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return appointment.ErrSlotTaken
	}
	return err
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&appointment.Appointment{}, "id = ?", id).Error
}

func (r *appointmentRepository) DeleteByDoctor(ctx context.Context, doctorID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&appointment.Appointment{}, "doctor_id = ?", doctorID).Error
}

func (r *appointmentRepository) ListForDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error) {
	var appts []*appointment.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND appointment_time BETWEEN ? AND ?", doctorID, from, to).
		Order("appointment_time asc").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *appointmentRepository) ListForDoctorDay(ctx context.Context, q *appointment.DoctorDayQuery) ([]*appointment.Appointment, error) {
	tx := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("clinic.appointments.doctor_id = ? AND clinic.appointments.appointment_time BETWEEN ? AND ?", q.DoctorID, q.From, q.To)

	if q.PatientName != "" {
		tx = tx.Joins("JOIN clinic.patients ON clinic.patients.id = clinic.appointments.patient_id").
			Where("clinic.patients.name ILIKE ?", "%"+q.PatientName+"%")
	}

	var appts []*appointment.Appointment
	if err := tx.Order("clinic.appointments.appointment_time asc").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *appointmentRepository) ListForPatient(ctx context.Context, q *appointment.PatientQuery) ([]*appointment.Appointment, error) {
	tx := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("clinic.appointments.patient_id = ?", q.PatientID)

	if q.DoctorName != "" {
		tx = tx.Joins("JOIN clinic.doctors ON clinic.doctors.id = clinic.appointments.doctor_id").
			Where("clinic.doctors.name ILIKE ?", "%"+q.DoctorName+"%")
	}
	if q.Status != nil {
		tx = tx.Where("clinic.appointments.status = ?", *q.Status)
	}

	var appts []*appointment.Appointment
	if err := tx.Order("clinic.appointments.appointment_time asc").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}
