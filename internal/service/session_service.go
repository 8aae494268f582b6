package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"wonnda/internal/domain"
)

const (
	// ProviderSessionTTL es la vigencia de la sesión emitida por el inicio de sesión con credenciales.
	ProviderSessionTTL = 30 * 24 * time.Hour
	// SignupSessionTTL es la vigencia de la cookie emitida justo después del alta.
	SignupSessionTTL = 7 * 24 * time.Hour
)

var (
	ErrSessionInvalid = errors.New("session invalid")
	ErrSessionExpired = errors.New("session expired")
)

// Identity es el conjunto mínimo de claims que viaja en el token de sesión.
type Identity struct {
	ID            string      `json:"id"`
	Email         string      `json:"email"`
	FirstName     string      `json:"firstName,omitempty"`
	LastName      string      `json:"lastName,omitempty"`
	Role          domain.Role `json:"role"`
	EmailVerified bool        `json:"emailVerified"`
}

// IdentityFromUser arma la identidad a partir del usuario persistido.
func IdentityFromUser(u domain.User) Identity {
	return Identity{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          u.Role,
		EmailVerified: u.EmailVerifiedAt != nil,
	}
}

type SessionClaims struct {
	Identity
	jwt.RegisteredClaims
}

// Session es un token firmado listo para ir en una cookie.
type Session struct {
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires"`
}

// SessionService emite y valida tokens de sesión HS256.
type SessionService struct {
	secret []byte
	issuer string
	store  SessionStore
	now    func() time.Time
}

// NewSessionService crea el servicio. store puede ser nil: en ese caso las sesiones son
// puramente stateless y Revoke no tiene efecto.
func NewSessionService(secret string, store SessionStore) *SessionService {
	return &SessionService{
		secret: []byte(secret),
		issuer: "wonnda",
		store:  store,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *SessionService) Issue(ctx context.Context, identity Identity, ttl time.Duration) (Session, error) {
	if len(s.secret) == 0 || strings.TrimSpace(identity.ID) == "" {
		return Session{}, ErrSessionInvalid
	}
	if ttl <= 0 {
		ttl = ProviderSessionTTL
	}
	now := s.now()
	expiresAt := now.Add(ttl)
	jti := uuid.NewString()
	claims := SessionClaims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    s.issuer,
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, err
	}
	if s.store != nil {
		if err := s.store.Store(ctx, jti, identity.ID, ttl); err != nil {
			return Session{}, err
		}
	}
	return Session{Token: signed, ExpiresAt: expiresAt}, nil
}

// Parse valida firma, emisor y vencimiento y, si hay store, que la sesión no esté revocada.
func (s *SessionService) Parse(ctx context.Context, token string) (SessionClaims, error) {
	if len(s.secret) == 0 || strings.TrimSpace(token) == "" {
		return SessionClaims{}, ErrSessionInvalid
	}
	claims, err := s.parseToken(token)
	if err != nil {
		return SessionClaims{}, err
	}
	if !s.isValidClaims(claims) {
		return SessionClaims{}, ErrSessionInvalid
	}
	if s.store != nil {
		ok, err := s.store.Exists(ctx, claims.RegisteredClaims.ID)
		if err != nil || !ok {
			return SessionClaims{}, ErrSessionInvalid
		}
	}
	return claims, nil
}

// Revoke invalida la sesión del token. Sin store configurado no hace nada.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if s.store == nil {
		return nil
	}
	claims, err := s.parseToken(token)
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return nil
		}
		return err
	}
	if claims.RegisteredClaims.ID == "" {
		return ErrSessionInvalid
	}
	return s.store.Revoke(ctx, claims.RegisteredClaims.ID)
}

func (s *SessionService) parseToken(tokenString string) (SessionClaims, error) {
	var claims SessionClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, ErrSessionExpired
		}
		return SessionClaims{}, ErrSessionInvalid
	}
	return claims, nil
}

func (s *SessionService) isValidClaims(claims SessionClaims) bool {
	if strings.TrimSpace(claims.Identity.ID) == "" || claims.Subject != claims.Identity.ID {
		return false
	}
	if !claims.Role.Valid() {
		return false
	}
	return claims.Issuer == s.issuer
}
