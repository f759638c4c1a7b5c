package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) doctor.Repository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, d *doctor.Doctor) error {
	err := r.db.WithContext(ctx).Create(d).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return doctor.ErrDoctorAlreadyExists
	}
	return err
}

func (r *doctorRepository) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, doctor.ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := r.db.WithContext(ctx).First(&d, "lower(email) = lower(?)", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, doctor.ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *doctorRepository) Update(ctx context.Context, d *doctor.Doctor) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&doctor.Doctor{}, "id = ?", id).Error
}

func (r *doctorRepository) List(ctx context.Context, q *doctor.ListDoctorsQuery) ([]*doctor.Doctor, error) {
	tx := r.db.WithContext(ctx).Model(&doctor.Doctor{})

	if name := strings.TrimSpace(q.Name); name != "" {
		tx = tx.Where("name ILIKE ?", "%"+name+"%")
	}
	if spec := strings.TrimSpace(q.Specialty); spec != "" {
		tx = tx.Where("lower(specialty) = lower(?)", spec)
	}

	var doctors []*doctor.Doctor
	if err := tx.Order("name asc").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}
