package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"wonnda/internal/metrics"
	"wonnda/internal/repository"
	"wonnda/internal/validation"
)

// CredentialService autentica email y contraseña contra el hash guardado.
type CredentialService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	metrics metrics.Recorder
}

func NewCredentialService(logger *zap.Logger, users repository.UserRepository, rec metrics.Recorder) *CredentialService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &CredentialService{logger: logger, users: users, metrics: rec}
}

// Authorize devuelve la identidad del usuario o ErrInvalidCredentials. Nunca distingue
// entre email inexistente y contraseña incorrecta.
func (s *CredentialService) Authorize(ctx context.Context, email, password string) (Identity, error) {
	identity, err := s.authorize(ctx, email, password)
	s.metrics.RecordSignIn(err == nil)
	return identity, err
}

func (s *CredentialService) authorize(ctx context.Context, email, password string) (Identity, error) {
	creds := validation.Login{Email: normalizeEmail(email), Password: password}
	if errs := validation.Validate(creds); errs != nil {
		return Identity{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Identity{}, ErrInvalidCredentials
		}
		s.logger.Error("lookup user for sign in failed", zap.Error(err))
		return Identity{}, err
	}
	if user.PasswordHash == "" {
		return Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), bcryptInput(creds.Password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}
	return IdentityFromUser(user), nil
}
