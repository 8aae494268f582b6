package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

type emailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendSender envia correos a traves de la API de Resend.
type ResendSender struct {
	emails emailsAPI
	from   string
	now    func() time.Time
}

func NewResendSender(apiKey, from string) (*ResendSender, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(from) == "" {
		return nil, fmt.Errorf("resend from is required")
	}
	client := resend.NewClient(apiKey)
	return &ResendSender{
		emails: client.Emails,
		from:   from,
		now:    time.Now,
	}, nil
}

func (s *ResendSender) SendVerificationCode(ctx context.Context, toEmail string, code string, expiresAt time.Time) error {
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("to email is required")
	}
	msg, err := RenderVerification(toEmail, code, expiresAt, s.now())
	if err != nil {
		return err
	}

	_, err = s.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}
