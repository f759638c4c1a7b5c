package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinicdesk/clinicdesk/config"
	"github.com/clinicdesk/clinicdesk/internal/domain"
	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/pkg/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func newAuthFixture(t *testing.T) (*AuthService, *auth.JWTManager) {
	t.Helper()

	doctors := newFakeDoctorRepo()
	doctors.add(&doctor.Doctor{Name: "Dr. Ibarra", Email: "ibarra@clinic.test", PasswordHash: mustHash(t, "stethoscope")})

	patients := newFakePatientRepo()
	patients.add(&patient.Patient{Name: "Ana Gomez", Email: "ana@example.test", PasswordHash: mustHash(t, "correct horse")})

	admins := newFakeAdminRepo()
	admins.admins["root"] = &domain.Admin{Username: "root", PasswordHash: mustHash(t, "toor-toor")}

	jwtManager := auth.NewJWTManager(config.JWTConfig{
		Secret:          "0123456789abcdef0123456789abcdef",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "clinicdesk-test",
	})

	return NewAuthService(admins, doctors, patients, jwtManager, zap.NewNop()), jwtManager
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, jwtManager := newAuthFixture(t)

	t.Run("each role logs in against its own store", func(t *testing.T) {
		cases := []struct {
			role       domain.Role
			identifier string
			password   string
		}{
			{domain.RoleAdmin, "root", "toor-toor"},
			{domain.RoleDoctor, "ibarra@clinic.test", "stethoscope"},
			{domain.RolePatient, "ana@example.test", "correct horse"},
		}
		for _, tc := range cases {
			pair, err := svc.Login(ctx, tc.role, tc.identifier, tc.password)
			if err != nil {
				t.Fatalf("Login(%s): %v", tc.role, err)
			}
			claims, err := jwtManager.ValidateAccessToken(pair.AccessToken)
			if err != nil {
				t.Fatalf("issued token invalid: %v", err)
			}
			if claims.Subject != tc.identifier || claims.Role != tc.role {
				t.Errorf("claims = %+v", claims)
			}
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := svc.Login(ctx, domain.RolePatient, "ana@example.test", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown identifier is indistinguishable from wrong password", func(t *testing.T) {
		if _, err := svc.Login(ctx, domain.RolePatient, "nobody@example.test", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("right password against the wrong role store fails", func(t *testing.T) {
		if _, err := svc.Login(ctx, domain.RoleDoctor, "ana@example.test", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture(t)

	pair, err := svc.Login(ctx, domain.RolePatient, "ana@example.test", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	t.Run("valid refresh token issues a new pair", func(t *testing.T) {
		fresh, err := svc.Refresh(ctx, pair.RefreshToken)
		if err != nil {
			t.Fatalf("Refresh: %v", err)
		}
		if fresh.AccessToken == "" {
			t.Error("no access token issued")
		}
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		if _, err := svc.Refresh(ctx, pair.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Refresh = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := svc.Refresh(ctx, "nope"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Refresh = %v, want ErrInvalidCredentials", err)
		}
	})
}
