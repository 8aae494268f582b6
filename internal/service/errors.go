package service

import (
	"errors"
	"fmt"
	"strings"

	"wonnda/internal/validation"
)

var (
	ErrAccountExists        = errors.New("account already exists")
	ErrEmailNotVerified     = errors.New("email not verified or verification expired")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired verification code")
	ErrEmailSendFailure     = errors.New("email send failed")
	ErrRateLimited          = errors.New("rate limited")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrDraftNotFound        = errors.New("onboarding draft not found")
	ErrDraftCompleted       = errors.New("onboarding draft already completed")
	ErrStepOutOfOrder       = errors.New("step out of order")
)

// ValidationError transporta los errores por campo de un payload rechazado.
type ValidationError struct {
	Message string
	Fields  validation.FieldErrors
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields.Fields(), ", "))
}

func invalid(message string, fields validation.FieldErrors) error {
	return &ValidationError{Message: message, Fields: fields}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
