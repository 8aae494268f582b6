package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"wonnda/internal/domain"
)

// OnboardingRepository persiste los borradores del wizard en onboarding_progress.
type OnboardingRepository interface {
	Create(ctx context.Context, draft domain.OnboardingDraft) error
	Get(ctx context.Context, id string) (domain.OnboardingDraft, error)
	Update(ctx context.Context, draft domain.OnboardingDraft) error
}

type PgOnboardingRepository struct {
	db DBTX
}

func NewPgOnboardingRepository(db DBTX) *PgOnboardingRepository {
	return &PgOnboardingRepository{db: db}
}

func (r *PgOnboardingRepository) Create(ctx context.Context, draft domain.OnboardingDraft) error {
	const query = `
		INSERT INTO onboarding_progress (
			id, role, email, password_hash, current_step, answers, completed,
			user_id, created_at, updated_at, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(ctx, query,
		draft.ID,
		string(draft.Role),
		nullableText(draft.Email),
		nullableText(draft.PasswordHash),
		draft.CurrentStep,
		answersOrEmpty(draft),
		draft.Completed,
		draft.UserID,
		draft.CreatedAt,
		draft.UpdatedAt,
		draft.ExpiresAt,
	)
	return err
}

func (r *PgOnboardingRepository) Get(ctx context.Context, id string) (domain.OnboardingDraft, error) {
	const query = `
		SELECT id, role, COALESCE(email, ''), COALESCE(password_hash, ''), current_step, answers,
			completed, user_id, created_at, updated_at, expires_at
		FROM onboarding_progress
		WHERE id = $1
	`
	var d domain.OnboardingDraft
	var role string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID,
		&role,
		&d.Email,
		&d.PasswordHash,
		&d.CurrentStep,
		&d.Answers,
		&d.Completed,
		&d.UserID,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.OnboardingDraft{}, err
	}
	d.Role = domain.Role(role)
	return d, err
}

func (r *PgOnboardingRepository) Update(ctx context.Context, draft domain.OnboardingDraft) error {
	const query = `
		UPDATE onboarding_progress SET
			email = $2,
			password_hash = $3,
			current_step = $4,
			answers = $5,
			completed = $6,
			user_id = $7,
			updated_at = $8
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		draft.ID,
		nullableText(draft.Email),
		nullableText(draft.PasswordHash),
		draft.CurrentStep,
		answersOrEmpty(draft),
		draft.Completed,
		draft.UserID,
		draft.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func answersOrEmpty(d domain.OnboardingDraft) map[string]any {
	out := make(map[string]any, len(d.Answers))
	for k, v := range d.Answers {
		out[k] = v
	}
	return out
}
