package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new doctor. Returns ErrDoctorAlreadyExists on a
	// duplicate email.
	Create(ctx context.Context, d *Doctor) error

	// GetByID returns ErrDoctorNotFound if the id is unknown.
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)

	// GetByEmail resolves a verified identity to its doctor record.
	GetByEmail(ctx context.Context, email string) (*Doctor, error)

	// Update overwrites an existing doctor record.
	Update(ctx context.Context, d *Doctor) error

	// Delete removes the doctor row. Appointment cleanup is the caller's
	// responsibility.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns doctors matching the name/specialty predicates. The AM/PM
	// period filter is applied by the service over template slots.
	List(ctx context.Context, q *ListDoctorsQuery) ([]*Doctor, error)
}
