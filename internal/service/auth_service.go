package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicdesk/clinicdesk/internal/domain"
	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/pkg/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid identifier or password")

type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
}

// AuthService verifies credentials for the three principal kinds and issues
// tokens whose subject is the principal's contact identifier: email for
// doctors and patients, username for admins.
type AuthService struct {
	adminRepo   AdminRepository
	doctorRepo  doctor.Repository
	patientRepo patient.Repository
	jwtManager  *auth.JWTManager
	log         *zap.Logger
}

func NewAuthService(
	adminRepo AdminRepository,
	doctorRepo doctor.Repository,
	patientRepo patient.Repository,
	jwtManager *auth.JWTManager,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		adminRepo:   adminRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		jwtManager:  jwtManager,
		log:         log,
	}
}

// Login verifies the identifier/password pair for the requested role and
// returns a token pair. Every failure collapses into ErrInvalidCredentials so
// a caller cannot distinguish a missing account from a wrong password.
func (s *AuthService) Login(ctx context.Context, role domain.Role, identifier, password string) (*domain.TokenPair, error) {
	hash, err := s.lookupPasswordHash(ctx, role, identifier)
	if err != nil {
		// Burn a bcrypt comparison anyway so response time does not reveal
		// whether the identifier exists.
		_, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		s.log.Warn("failed login attempt",
			zap.String("role", string(role)),
			zap.String("identifier", identifier),
		)
		return nil, ErrInvalidCredentials
	}

	pair, err := s.jwtManager.GenerateTokenPair(&domain.Claims{Subject: identifier, Role: role})
	if err != nil {
		s.log.Error("failed to generate token pair", zap.Error(err))
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	s.log.Info("principal logged in",
		zap.String("role", string(role)),
		zap.String("identifier", identifier),
	)
	return pair, nil
}

// Refresh issues a new pair from a valid refresh token, re-checking that the
// subject still resolves to a live account.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if _, err := s.lookupPasswordHash(ctx, claims.Role, claims.Subject); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.jwtManager.GenerateTokenPair(claims)
}

func (s *AuthService) lookupPasswordHash(ctx context.Context, role domain.Role, identifier string) (string, error) {
	switch role {
	case domain.RoleAdmin:
		a, err := s.adminRepo.GetByUsername(ctx, identifier)
		if err != nil {
			return "", err
		}
		return a.PasswordHash, nil
	case domain.RoleDoctor:
		d, err := s.doctorRepo.GetByEmail(ctx, identifier)
		if err != nil {
			return "", err
		}
		return d.PasswordHash, nil
	case domain.RolePatient:
		p, err := s.patientRepo.GetByEmail(ctx, identifier)
		if err != nil {
			return "", err
		}
		return p.PasswordHash, nil
	}
	return "", ErrInvalidCredentials
}
