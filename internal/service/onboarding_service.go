package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"wonnda/internal/domain"
	"wonnda/internal/repository"
	"wonnda/internal/validation"
	"wonnda/internal/wizard"
)

// DraftTTL es cuánto puede retomarse un borrador sin actividad de alta.
const DraftTTL = 24 * time.Hour

// OnboardingService avanza el wizard de alta sobre borradores persistidos. Los efectos
// de cada paso (enviar OTP, verificarlo, crear la cuenta) se delegan en AccountService.
type OnboardingService struct {
	logger   *zap.Logger
	drafts   repository.OnboardingRepository
	accounts *AccountService
	ttl      time.Duration
}

func NewOnboardingService(logger *zap.Logger, drafts repository.OnboardingRepository, accounts *AccountService) *OnboardingService {
	return &OnboardingService{
		logger:   logger,
		drafts:   drafts,
		accounts: accounts,
		ttl:      DraftTTL,
	}
}

// DraftState es el borrador junto con el paso que le toca. Step es nil si ya terminó.
type DraftState struct {
	Draft      domain.OnboardingDraft `json:"draft"`
	Step       *wizard.Step           `json:"step,omitempty"`
	TotalSteps int                    `json:"totalSteps"`
}

// StepResult es la respuesta de SubmitStep.
type StepResult struct {
	DraftState
	OTP     string         `json:"otp,omitempty"`
	Account *AccountResult `json:"account,omitempty"`
}

// StartDraft crea un borrador vacío en el paso 1 para role.
func (s *OnboardingService) StartDraft(ctx context.Context, role domain.Role) (DraftState, error) {
	if !role.Valid() {
		return DraftState{}, invalid("Invalid form data", validation.FieldErrors{"role": {"Please select an account type"}})
	}
	now := s.accounts.now()
	draft := domain.OnboardingDraft{
		ID:          uuid.NewString(),
		Role:        role,
		CurrentStep: 1,
		Answers:     map[string]json.RawMessage{},
		CreatedAt:   now,
		UpdatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}
	if err := s.drafts.Create(ctx, draft); err != nil {
		return DraftState{}, fmt.Errorf("create draft: %w", err)
	}
	return s.state(draft)
}

func (s *OnboardingService) GetDraft(ctx context.Context, id string) (DraftState, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return DraftState{}, err
	}
	return s.state(draft)
}

// SubmitStep valida la respuesta del paso actual, ejecuta su acción y avanza el borrador.
// Solo se acepta el paso en curso; volver atrás se hace con Back.
func (s *OnboardingService) SubmitStep(ctx context.Context, id string, number int, raw json.RawMessage) (StepResult, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return StepResult{}, err
	}
	if draft.Completed {
		return StepResult{}, ErrDraftCompleted
	}
	if number != draft.CurrentStep {
		return StepResult{}, ErrStepOutOfOrder
	}
	step, err := wizard.StepAt(draft.Role, number)
	if err != nil {
		return StepResult{}, err
	}

	answer, err := step.Decode(raw)
	if err != nil {
		return StepResult{}, invalid("Invalid form data", validation.FieldErrors{"_": {"Invalid payload"}})
	}
	if otp, ok := answer.(wizard.OTPAnswer); ok {
		otp.Email = draft.Email
		answer = otp
	}
	if errs := wizard.CanAdvance(answer); errs != nil {
		return StepResult{}, invalid("Invalid form data", errs)
	}

	var result StepResult
	stored := any(answer)
	switch step.Action {
	case wizard.ActionSendOTP:
		creds := answer.(wizard.CredentialsAnswer)
		hash, err := HashPassword(creds.Password)
		if err != nil {
			return StepResult{}, err
		}
		sent, err := s.accounts.RequestEmailVerification(ctx, creds.Email)
		if err != nil {
			return StepResult{}, err
		}
		draft.Email = sent.Email
		draft.PasswordHash = hash
		result.OTP = sent.OTP
		stored = map[string]string{"email": sent.Email}
	case wizard.ActionVerifyOTP:
		if err := s.verify(ctx, draft, answer.(wizard.OTPAnswer)); err != nil {
			return StepResult{}, err
		}
	}

	encoded, err := json.Marshal(stored)
	if err != nil {
		return StepResult{}, fmt.Errorf("encode answer: %w", err)
	}
	draft.Answers[step.ID] = encoded

	if step.Action == wizard.ActionCreateAccount {
		account, err := s.finalize(ctx, draft)
		if err != nil {
			return StepResult{}, err
		}
		draft.Completed = true
		draft.UserID = &account.UserID
		result.Account = &account
	} else {
		draft.CurrentStep++
	}

	draft.UpdatedAt = s.accounts.now()
	if err := s.drafts.Update(ctx, draft); err != nil {
		if result.Account == nil {
			return StepResult{}, fmt.Errorf("update draft: %w", err)
		}
		s.logger.Error("mark draft completed failed", zap.Error(err), zap.String("draft_id", draft.ID))
	}

	state, err := s.state(draft)
	if err != nil {
		return StepResult{}, err
	}
	result.DraftState = state
	return result, nil
}

// Back retrocede un paso sin borrar respuestas. En el paso 1 no hace nada.
func (s *OnboardingService) Back(ctx context.Context, id string) (DraftState, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return DraftState{}, err
	}
	if draft.Completed {
		return DraftState{}, ErrDraftCompleted
	}
	if draft.CurrentStep > 1 {
		draft.CurrentStep--
		draft.UpdatedAt = s.accounts.now()
		if err := s.drafts.Update(ctx, draft); err != nil {
			return DraftState{}, fmt.Errorf("update draft: %w", err)
		}
	}
	return s.state(draft)
}

// verify confirma el OTP salvo que el email ya esté verificado por una visita previa al paso.
func (s *OnboardingService) verify(ctx context.Context, draft domain.OnboardingDraft, answer wizard.OTPAnswer) error {
	if _, seen := draft.Answers[wizard.StepOTP]; seen {
		verified, err := s.accounts.IsEmailVerified(ctx, draft.Email)
		if err != nil {
			return err
		}
		if verified {
			return nil
		}
	}
	return s.accounts.VerifyEmailCode(ctx, answer.Email, answer.OTP)
}

func (s *OnboardingService) finalize(ctx context.Context, draft domain.OnboardingDraft) (AccountResult, error) {
	switch draft.Role {
	case domain.RoleRetailer:
		in, err := wizard.AssembleRetailer(draft.Answers)
		if err != nil {
			return AccountResult{}, invalid("Invalid form data", validation.FieldErrors{"_": {"Invalid payload"}})
		}
		in.Email = draft.Email
		return s.accounts.FinalizeRetailer(ctx, in, draft.PasswordHash)
	case domain.RoleSupplier:
		in, err := wizard.AssembleSupplier(draft.Answers)
		if err != nil {
			return AccountResult{}, invalid("Invalid form data", validation.FieldErrors{"_": {"Invalid payload"}})
		}
		in.Email = draft.Email
		return s.accounts.FinalizeSupplier(ctx, in, draft.PasswordHash)
	default:
		return AccountResult{}, wizard.ErrUnknownRole
	}
}

func (s *OnboardingService) load(ctx context.Context, id string) (domain.OnboardingDraft, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.OnboardingDraft{}, ErrDraftNotFound
	}
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.OnboardingDraft{}, ErrDraftNotFound
		}
		return domain.OnboardingDraft{}, fmt.Errorf("load draft: %w", err)
	}
	if draft.Expired(s.accounts.now()) {
		return domain.OnboardingDraft{}, ErrDraftNotFound
	}
	if draft.Answers == nil {
		draft.Answers = map[string]json.RawMessage{}
	}
	return draft, nil
}

func (s *OnboardingService) state(draft domain.OnboardingDraft) (DraftState, error) {
	steps, err := wizard.Sequence(draft.Role)
	if err != nil {
		return DraftState{}, err
	}
	out := DraftState{Draft: draft, TotalSteps: len(steps)}
	if !draft.Completed && draft.CurrentStep >= 1 && draft.CurrentStep <= len(steps) {
		step := steps[draft.CurrentStep-1]
		out.Step = &step
	}
	return out, nil
}
