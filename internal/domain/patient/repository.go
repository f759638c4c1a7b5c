package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new patient. Returns ErrPatientAlreadyExists when the
	// email or phone is already registered.
	Create(ctx context.Context, p *Patient) error

	// GetByID returns ErrPatientNotFound if the id is unknown.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	// GetByEmail resolves a verified identity to its patient record.
	GetByEmail(ctx context.Context, email string) (*Patient, error)

	// ExistsByEmailOrPhone checks registration uniqueness without fetching
	// the full record.
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
}
