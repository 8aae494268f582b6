package email

import (
	"context"
	"errors"
	"time"
)

// Sender define la interfaz para envio de correos de verificacion.
type Sender interface {
	SendVerificationCode(ctx context.Context, toEmail string, code string, expiresAt time.Time) error
}

// ErrNotConfigured se devuelve cuando no hay proveedor de email configurado.
var ErrNotConfigured = errors.New("email service not configured")

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendVerificationCode(_ context.Context, _ string, _ string, _ time.Time) error {
	if s.reason == "" {
		return ErrNotConfigured
	}
	return errors.New(s.reason)
}
