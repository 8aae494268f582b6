package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"wonnda/internal/domain"
	"wonnda/internal/email"
	"wonnda/internal/metrics"
	"wonnda/internal/repository"
	"wonnda/internal/validation"
)

const (
	otpTTL = 10 * time.Minute
	// PasswordHashCost es el costo bcrypt de las contraseñas de usuario.
	PasswordHashCost = 12

	bcryptMaxPasswordBytes = 72
)

// AccountService coordina la verificación de email y el alta de cuentas.
type AccountService struct {
	logger   *zap.Logger
	users    repository.UserRepository
	codes    repository.VerificationCodeRepository
	accounts repository.AccountRepository
	sender   email.Sender
	limiter  OTPRateLimiter
	metrics  metrics.Recorder
	now      func() time.Time
	echoOTP  bool
}

// AccountOption ajusta dependencias opcionales de AccountService.
type AccountOption func(*AccountService)

// WithClock reemplaza el reloj (tests de vencimiento).
func WithClock(now func() time.Time) AccountOption {
	return func(s *AccountService) { s.now = now }
}

// WithOTPEcho devuelve el código en la respuesta. Solo fuera de producción.
func WithOTPEcho(enabled bool) AccountOption {
	return func(s *AccountService) { s.echoOTP = enabled }
}

func WithMetrics(rec metrics.Recorder) AccountOption {
	return func(s *AccountService) {
		if rec != nil {
			s.metrics = rec
		}
	}
}

func NewAccountService(
	logger *zap.Logger,
	users repository.UserRepository,
	codes repository.VerificationCodeRepository,
	accounts repository.AccountRepository,
	sender email.Sender,
	limiter OTPRateLimiter,
	opts ...AccountOption,
) *AccountService {
	if limiter == nil {
		limiter = NewOTPRateLimiter(otpRateWindow, otpRateMax)
	}
	s := &AccountService{
		logger:   logger,
		users:    users,
		codes:    codes,
		accounts: accounts,
		sender:   sender,
		limiter:  limiter,
		metrics:  metrics.Nop{},
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// VerificationResult describe el código emitido. OTP solo viene informado con echo habilitado.
type VerificationResult struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
	OTP       string    `json:"otp,omitempty"`
}

// AccountResult es la respuesta del alta.
type AccountResult struct {
	UserID      string      `json:"userId"`
	Role        domain.Role `json:"role"`
	RedirectURL string      `json:"redirectUrl"`
}

// RequestEmailVerification emite un código nuevo para emailAddr, invalidando los anteriores,
// y lo envía por email. Si el envío falla el código queda persistido y se devuelve
// ErrEmailSendFailure.
func (s *AccountService) RequestEmailVerification(ctx context.Context, emailAddr string) (VerificationResult, error) {
	emailAddr = normalizeEmail(emailAddr)
	if errs := validation.Validate(validation.EmailVerificationRequest{Email: emailAddr}); errs != nil {
		return VerificationResult{}, invalid("Invalid email address", errs)
	}
	if !s.limiter.Allow(ctx, emailAddr) {
		return VerificationResult{}, ErrRateLimited
	}

	exists, err := s.users.ExistsByEmail(ctx, emailAddr)
	if err != nil {
		return VerificationResult{}, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return VerificationResult{}, ErrAccountExists
	}

	code, err := generateOTP()
	if err != nil {
		return VerificationResult{}, err
	}
	now := s.now()
	record := domain.EmailVerificationCode{
		ID:        uuid.NewString(),
		Email:     emailAddr,
		Code:      code,
		ExpiresAt: now.Add(otpTTL),
		CreatedAt: now,
	}
	if err := s.codes.Replace(ctx, record); err != nil {
		return VerificationResult{}, fmt.Errorf("store verification code: %w", err)
	}

	if err := s.sender.SendVerificationCode(ctx, emailAddr, code, record.ExpiresAt); err != nil {
		s.metrics.RecordCodeSendFailure()
		s.logger.Warn("send verification code failed", zap.Error(err), zap.String("email", emailAddr))
		return VerificationResult{}, fmt.Errorf("%w: %v", ErrEmailSendFailure, err)
	}
	s.metrics.RecordCodeSent()

	result := VerificationResult{Email: emailAddr, ExpiresAt: record.ExpiresAt}
	if s.echoOTP {
		result.OTP = code
	}
	return result, nil
}

// ResendVerificationCode es RequestEmailVerification: el código anterior deja de servir.
func (s *AccountService) ResendVerificationCode(ctx context.Context, emailAddr string) (VerificationResult, error) {
	return s.RequestEmailVerification(ctx, emailAddr)
}

// VerifyEmailCode marca como verificado el código vigente que coincide exactamente.
// Código incorrecto, vencido o ya usado dan el mismo ErrInvalidOrExpiredCode.
func (s *AccountService) VerifyEmailCode(ctx context.Context, emailAddr, code string) error {
	emailAddr = normalizeEmail(emailAddr)
	code = strings.TrimSpace(code)
	if errs := validation.Validate(validation.EmailVerificationConfirm{Email: emailAddr, Code: code}); errs != nil {
		return invalid("Invalid email or code", errs)
	}

	record, err := s.codes.FindActive(ctx, emailAddr, code, s.now())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.metrics.RecordVerification(false)
			return ErrInvalidOrExpiredCode
		}
		return fmt.Errorf("find verification code: %w", err)
	}
	if err := s.codes.MarkVerified(ctx, record.ID); err != nil {
		return fmt.Errorf("mark code verified: %w", err)
	}
	s.metrics.RecordVerification(true)
	return nil
}

// IsEmailVerified indica si el email tiene un código verificado y vigente.
func (s *AccountService) IsEmailVerified(ctx context.Context, emailAddr string) (bool, error) {
	_, err := s.codes.FindVerified(ctx, normalizeEmail(emailAddr), s.now())
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// CreateRetailerAccount valida el payload completo y crea usuario + perfil retailer.
func (s *AccountService) CreateRetailerAccount(ctx context.Context, in validation.RetailerSignup) (AccountResult, error) {
	in.Email = normalizeEmail(in.Email)
	if errs := validation.Validate(in); errs != nil {
		return AccountResult{}, invalid("Invalid form data", errs)
	}
	if err := s.ensureCanCreate(ctx, in.Email); err != nil {
		return AccountResult{}, err
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return AccountResult{}, err
	}
	return s.createRetailer(ctx, in, hash)
}

// FinalizeRetailer crea la cuenta a partir de un borrador del wizard, cuya contraseña ya
// viene hasheada.
func (s *AccountService) FinalizeRetailer(ctx context.Context, in validation.RetailerSignup, passwordHash string) (AccountResult, error) {
	in.Email = normalizeEmail(in.Email)
	if errs := validation.ValidateExcept(in, "password"); errs != nil {
		return AccountResult{}, invalid("Invalid form data", errs)
	}
	if passwordHash == "" {
		return AccountResult{}, invalid("Invalid form data", validation.FieldErrors{"password": {"Password is required"}})
	}
	if err := s.ensureCanCreate(ctx, in.Email); err != nil {
		return AccountResult{}, err
	}
	return s.createRetailer(ctx, in, passwordHash)
}

// CreateSupplierAccount es el equivalente de CreateRetailerAccount para proveedores.
func (s *AccountService) CreateSupplierAccount(ctx context.Context, in validation.SupplierSignup) (AccountResult, error) {
	in.Email = normalizeEmail(in.Email)
	if errs := validation.Validate(in); errs != nil {
		return AccountResult{}, invalid("Invalid form data", errs)
	}
	if err := s.ensureCanCreate(ctx, in.Email); err != nil {
		return AccountResult{}, err
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return AccountResult{}, err
	}
	return s.createSupplier(ctx, in, hash)
}

func (s *AccountService) FinalizeSupplier(ctx context.Context, in validation.SupplierSignup, passwordHash string) (AccountResult, error) {
	in.Email = normalizeEmail(in.Email)
	if errs := validation.ValidateExcept(in, "password"); errs != nil {
		return AccountResult{}, invalid("Invalid form data", errs)
	}
	if passwordHash == "" {
		return AccountResult{}, invalid("Invalid form data", validation.FieldErrors{"password": {"Password is required"}})
	}
	if err := s.ensureCanCreate(ctx, in.Email); err != nil {
		return AccountResult{}, err
	}
	return s.createSupplier(ctx, in, passwordHash)
}

func (s *AccountService) ensureCanCreate(ctx context.Context, emailAddr string) error {
	exists, err := s.users.ExistsByEmail(ctx, emailAddr)
	if err != nil {
		return fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return ErrAccountExists
	}
	verified, err := s.IsEmailVerified(ctx, emailAddr)
	if err != nil {
		return fmt.Errorf("find verified code: %w", err)
	}
	if !verified {
		return ErrEmailNotVerified
	}
	return nil
}

func (s *AccountService) createRetailer(ctx context.Context, in validation.RetailerSignup, passwordHash string) (AccountResult, error) {
	in.ProductPreferences.ApplyDefaults()
	user := s.newUser(in.Email, passwordHash, in.PersonalInfo, domain.RoleRetailer)
	profile := domain.RetailerProfile{
		ID:                     uuid.NewString(),
		UserID:                 user.ID,
		FirstName:              user.FirstName,
		LastName:               user.LastName,
		Phone:                  user.Phone,
		PhoneCountryCode:       user.PhoneCountryCode,
		CompanyName:            in.CompanyName,
		Address:                in.Address,
		CompanyType:            in.RetailerCompanyInfo.CompanyType,
		AnnualRevenue:          in.RetailerCompanyInfo.AnnualRevenue,
		Website:                strings.TrimSpace(in.RetailerCompanyInfo.Website),
		BusinessGoals:          in.BusinessGoals,
		HasLaunchedProduct:     *in.HasLaunchedProduct,
		InterestedCategories:   in.InterestedCategories,
		ProductDescription:     in.ProductDescription,
		AutoCreateRequest:      *in.AutoCreateRequest,
		GetDirectIntroductions: *in.GetDirectIntroductions,
		CreatedAt:              user.CreatedAt,
		UpdatedAt:              user.UpdatedAt,
	}
	if err := s.accounts.CreateRetailerAccount(ctx, user, profile); err != nil {
		return AccountResult{}, s.createError(err, user)
	}
	return s.created(user), nil
}

func (s *AccountService) createSupplier(ctx context.Context, in validation.SupplierSignup, passwordHash string) (AccountResult, error) {
	user := s.newUser(in.Email, passwordHash, in.PersonalInfo, domain.RoleSupplier)
	profile := domain.SupplierProfile{
		ID:                     uuid.NewString(),
		UserID:                 user.ID,
		FirstName:              user.FirstName,
		LastName:               user.LastName,
		Phone:                  user.Phone,
		PhoneCountryCode:       user.PhoneCountryCode,
		CompanyName:            in.CompanyName,
		Address:                in.Address,
		Website:                strings.TrimSpace(in.SupplierCompanyInfo.Website),
		CompanyType:            in.SupplierCompanyType.CompanyType,
		UserRole:               in.UserRole,
		TeamSize:               in.TeamSize,
		AnnualRevenue:          in.SupplierScale.AnnualRevenue,
		Offerings:              in.Offerings,
		ProductionTypes:        in.ProductionTypes,
		MOQQuantities:          in.MOQQuantities,
		ProductionOutsourcing:  in.ProductionOutsourcing,
		ManufacturingCountries: in.ManufacturingCountries,
		SupportGoals:           in.SupportGoals,
		CompanyDescription:     in.CompanyDescription,
		CreatedAt:              user.CreatedAt,
		UpdatedAt:              user.UpdatedAt,
	}
	if err := s.accounts.CreateSupplierAccount(ctx, user, profile); err != nil {
		return AccountResult{}, s.createError(err, user)
	}
	return s.created(user), nil
}

func (s *AccountService) newUser(emailAddr, passwordHash string, info validation.PersonalInfo, role domain.Role) domain.User {
	now := s.now()
	return domain.User{
		ID:               uuid.NewString(),
		Email:            emailAddr,
		PasswordHash:     passwordHash,
		FirstName:        strings.TrimSpace(info.FirstName),
		LastName:         strings.TrimSpace(info.LastName),
		Phone:            strings.TrimSpace(info.Phone),
		PhoneCountryCode: strings.TrimSpace(info.PhoneCountryCode),
		Role:             role,
		EmailVerifiedAt:  &now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (s *AccountService) createError(err error, user domain.User) error {
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return ErrAccountExists
	}
	s.logger.Error("create account failed", zap.Error(err), zap.String("role", string(user.Role)))
	return fmt.Errorf("create account: %w", err)
}

func (s *AccountService) created(user domain.User) AccountResult {
	s.metrics.RecordAccountCreated(string(user.Role))
	s.logger.Info("account created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return AccountResult{UserID: user.ID, Role: user.Role, RedirectURL: user.Role.DashboardPath()}
}

// HashPassword aplica bcrypt con PasswordHashCost. Solo cuentan los primeros 72 bytes.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), PasswordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// bcryptInput recorta la contraseña al máximo que bcrypt procesa.
func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxPasswordBytes {
		b = b[:bcryptMaxPasswordBytes]
	}
	return b
}

// generateOTP devuelve un código de 4 dígitos uniforme en [1000, 9999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", 1000+n.Int64()), nil
}
