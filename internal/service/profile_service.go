package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"wonnda/internal/domain"
	"wonnda/internal/repository"
	"wonnda/internal/validation"
)

// ProfileService sirve las lecturas del dashboard y la edición del perfil básico.
type ProfileService struct {
	logger   *zap.Logger
	users    repository.UserRepository
	profiles repository.ProfileRepository
	now      func() time.Time
}

func NewProfileService(logger *zap.Logger, users repository.UserRepository, profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		logger:   logger,
		users:    users,
		profiles: profiles,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Dashboard reúne el usuario y el perfil de su rol.
type Dashboard struct {
	User     domain.User             `json:"user"`
	Retailer *domain.RetailerProfile `json:"retailer,omitempty"`
	Supplier *domain.SupplierProfile `json:"supplier,omitempty"`
}

func (s *ProfileService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *ProfileService) GetRetailerProfile(ctx context.Context, userID string) (domain.RetailerProfile, error) {
	profile, err := s.profiles.GetRetailerByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.RetailerProfile{}, ErrProfileNotFound
	}
	return profile, err
}

func (s *ProfileService) GetSupplierProfile(ctx context.Context, userID string) (domain.SupplierProfile, error) {
	profile, err := s.profiles.GetSupplierByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.SupplierProfile{}, ErrProfileNotFound
	}
	return profile, err
}

// Dashboard carga el perfil que corresponde a role. Si el rol pedido no coincide con el
// del usuario se devuelve ErrProfileNotFound.
func (s *ProfileService) Dashboard(ctx context.Context, userID string, role domain.Role) (Dashboard, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}
	if user.Role != role {
		return Dashboard{}, ErrProfileNotFound
	}
	out := Dashboard{User: user}
	switch role {
	case domain.RoleRetailer:
		p, err := s.GetRetailerProfile(ctx, userID)
		if err != nil {
			return Dashboard{}, err
		}
		out.Retailer = &p
	case domain.RoleSupplier:
		p, err := s.GetSupplierProfile(ctx, userID)
		if err != nil {
			return Dashboard{}, err
		}
		out.Supplier = &p
	default:
		return Dashboard{}, ErrProfileNotFound
	}
	return out, nil
}

// UpdateUser edita nombre, apellido y teléfono; los campos nil no cambian.
func (s *ProfileService) UpdateUser(ctx context.Context, userID string, in validation.UserUpdate) (domain.User, error) {
	if errs := validation.Validate(in); errs != nil {
		return domain.User{}, invalid("Invalid form data", errs)
	}
	user, err := s.users.UpdateProfile(ctx, userID, repository.UserUpdate{
		FirstName:        trimmed(in.FirstName),
		LastName:         trimmed(in.LastName),
		Phone:            trimmed(in.Phone),
		PhoneCountryCode: trimmed(in.PhoneCountryCode),
		UpdatedAt:        s.now(),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		s.logger.Error("update user failed", zap.Error(err), zap.String("user_id", userID))
		return domain.User{}, err
	}
	return user, nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
