package domain

import (
	"encoding/json"
	"time"
)

// OnboardingDraft persiste el progreso del wizard entre requests.
// Answers guarda el JSON de cada paso indexado por el identificador del paso.
type OnboardingDraft struct {
	ID           string                     `json:"id"`
	Role         Role                       `json:"role"`
	Email        string                     `json:"email,omitempty"`
	PasswordHash string                     `json:"-"`
	CurrentStep  int                        `json:"currentStep"`
	Answers      map[string]json.RawMessage `json:"answers"`
	Completed    bool                       `json:"completed"`
	UserID       *string                    `json:"userId,omitempty"`
	CreatedAt    time.Time                  `json:"createdAt"`
	UpdatedAt    time.Time                  `json:"updatedAt"`
	ExpiresAt    time.Time                  `json:"expiresAt"`
}

// Expired indica si el borrador ya no puede retomarse.
func (d OnboardingDraft) Expired(now time.Time) bool {
	return !d.ExpiresAt.After(now)
}
