package service

import (
	"context"
	"errors"
	"testing"

	"github.com/clinicdesk/clinicdesk/internal/domain"
	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
)

func TestAuthorize(t *testing.T) {
	ctx := context.Background()

	doctors := newFakeDoctorRepo()
	doctors.add(&doctor.Doctor{Name: "Dr. Ibarra", Email: "ibarra@clinic.test"})
	patients := newFakePatientRepo()
	patients.add(&patient.Patient{Name: "Ana Gomez", Email: "ana@example.test"})
	admins := newFakeAdminRepo("root")

	gate := NewAuthorizationGate(admins, doctors, patients)

	allow := []struct {
		name     string
		claims   *domain.Claims
		required domain.Role
	}{
		{"admin", &domain.Claims{Subject: "root", Role: domain.RoleAdmin}, domain.RoleAdmin},
		{"doctor", &domain.Claims{Subject: "ibarra@clinic.test", Role: domain.RoleDoctor}, domain.RoleDoctor},
		{"patient", &domain.Claims{Subject: "ana@example.test", Role: domain.RolePatient}, domain.RolePatient},
	}
	for _, tc := range allow {
		t.Run("allows "+tc.name, func(t *testing.T) {
			if err := gate.Authorize(ctx, tc.claims, tc.required); err != nil {
				t.Errorf("Authorize = %v, want nil", err)
			}
		})
	}

	deny := []struct {
		name     string
		claims   *domain.Claims
		required domain.Role
	}{
		{"nil claims", nil, domain.RolePatient},
		{"empty subject", &domain.Claims{Role: domain.RolePatient}, domain.RolePatient},
		{"role mismatch", &domain.Claims{Subject: "ana@example.test", Role: domain.RolePatient}, domain.RoleAdmin},
		{"patient token for doctor route", &domain.Claims{Subject: "ana@example.test", Role: domain.RolePatient}, domain.RoleDoctor},
		{"subject no longer on file", &domain.Claims{Subject: "gone@example.test", Role: domain.RolePatient}, domain.RolePatient},
		{"doctor subject missing", &domain.Claims{Subject: "gone@clinic.test", Role: domain.RoleDoctor}, domain.RoleDoctor},
		{"admin subject missing", &domain.Claims{Subject: "intruder", Role: domain.RoleAdmin}, domain.RoleAdmin},
		{"unknown role", &domain.Claims{Subject: "x", Role: domain.Role("auditor")}, domain.Role("auditor")},
	}
	for _, tc := range deny {
		t.Run("denies "+tc.name, func(t *testing.T) {
			err := gate.Authorize(ctx, tc.claims, tc.required)
			if !errors.Is(err, ErrAccessDenied) {
				t.Errorf("Authorize = %v, want ErrAccessDenied", err)
			}
		})
	}
}
