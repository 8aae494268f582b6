package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"wonnda/internal/domain"
)

// VerificationCodeRepository persiste los OTP de email_verification_codes.
type VerificationCodeRepository interface {
	// Replace borra los códigos previos del email e inserta el nuevo en una sola transacción.
	Replace(ctx context.Context, code domain.EmailVerificationCode) error
	FindActive(ctx context.Context, email, code string, now time.Time) (domain.EmailVerificationCode, error)
	MarkVerified(ctx context.Context, id string) error
	FindVerified(ctx context.Context, email string, now time.Time) (domain.EmailVerificationCode, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type PgVerificationCodeRepository struct {
	db TxBeginner
}

func NewPgVerificationCodeRepository(db TxBeginner) *PgVerificationCodeRepository {
	return &PgVerificationCodeRepository{db: db}
}

func (r *PgVerificationCodeRepository) Replace(ctx context.Context, code domain.EmailVerificationCode) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM email_verification_codes WHERE email = $1`, code.Email); err != nil {
		return err
	}
	const insert = `
		INSERT INTO email_verification_codes (id, email, code, expires, verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.Exec(ctx, insert,
		code.ID,
		code.Email,
		code.Code,
		code.ExpiresAt,
		code.Verified,
		code.CreatedAt,
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PgVerificationCodeRepository) FindActive(ctx context.Context, email, code string, now time.Time) (domain.EmailVerificationCode, error) {
	const query = `
		SELECT id, email, code, expires, verified, created_at
		FROM email_verification_codes
		WHERE email = $1 AND code = $2 AND verified = false AND expires > $3
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanCode(r.db.QueryRow(ctx, query, email, code, now))
}

func (r *PgVerificationCodeRepository) MarkVerified(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE email_verification_codes SET verified = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgVerificationCodeRepository) FindVerified(ctx context.Context, email string, now time.Time) (domain.EmailVerificationCode, error) {
	const query = `
		SELECT id, email, code, expires, verified, created_at
		FROM email_verification_codes
		WHERE email = $1 AND verified = true AND expires > $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanCode(r.db.QueryRow(ctx, query, email, now))
}

func (r *PgVerificationCodeRepository) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM email_verification_codes WHERE email = $1`, email)
	return err
}

func scanCode(row pgx.Row) (domain.EmailVerificationCode, error) {
	var c domain.EmailVerificationCode
	err := row.Scan(&c.ID, &c.Email, &c.Code, &c.ExpiresAt, &c.Verified, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.EmailVerificationCode{}, err
	}
	return c, err
}
