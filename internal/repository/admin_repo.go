package repository

import (
	"context"
	"errors"

	"github.com/clinicdesk/clinicdesk/internal/domain"
	"github.com/clinicdesk/clinicdesk/internal/service"
	"gorm.io/gorm"
)

var errAdminNotFound = errors.New("admin not found")

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) service.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.db.WithContext(ctx).First(&a, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
