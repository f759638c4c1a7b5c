package service

import (
	"context"

	"github.com/clinicdesk/clinicdesk/internal/domain"
	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
)

// AuthorizationGate is the single policy point in front of every protected
// operation: the verified identity must carry the required role, and the
// subject must still resolve to a live record of that kind. It never touches
// credentials; signature verification happened upstream.
//
// Every rejection is ErrAccessDenied regardless of cause, so the wire shape
// cannot leak whether the role was wrong or whether a record exists.
type AuthorizationGate struct {
	adminRepo   AdminRepository
	doctorRepo  doctor.Repository
	patientRepo patient.Repository
}

func NewAuthorizationGate(adminRepo AdminRepository, doctorRepo doctor.Repository, patientRepo patient.Repository) *AuthorizationGate {
	return &AuthorizationGate{adminRepo: adminRepo, doctorRepo: doctorRepo, patientRepo: patientRepo}
}

// Authorize admits the claims only when the role matches and the subject is
// still on file for that role.
func (g *AuthorizationGate) Authorize(ctx context.Context, claims *domain.Claims, required domain.Role) error {
	if claims == nil || claims.Subject == "" || claims.Role != required {
		return ErrAccessDenied
	}

	switch required {
	case domain.RoleAdmin:
		if _, err := g.adminRepo.GetByUsername(ctx, claims.Subject); err != nil {
			return ErrAccessDenied
		}
	case domain.RoleDoctor:
		if _, err := g.doctorRepo.GetByEmail(ctx, claims.Subject); err != nil {
			return ErrAccessDenied
		}
	case domain.RolePatient:
		if _, err := g.patientRepo.GetByEmail(ctx, claims.Subject); err != nil {
			return ErrAccessDenied
		}
	default:
		return ErrAccessDenied
	}
	return nil
}
