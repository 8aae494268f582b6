package domain

import "time"

// EmailVerificationCode es un OTP de corta duración asociado a un email.
type EmailVerificationCode struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expires"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

// ActiveAt indica si el código aún no venció en el instante dado.
func (c EmailVerificationCode) ActiveAt(now time.Time) bool {
	return c.ExpiresAt.After(now)
}
