package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"wonnda/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id string, update UserUpdate) (domain.User, error)
}

// UserUpdate lista los campos editables; nil deja el valor actual.
type UserUpdate struct {
	FirstName        *string
	LastName         *string
	Phone            *string
	PhoneCountryCode *string
	UpdatedAt        time.Time
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	db DBTX
}

func NewPgUserRepository(db DBTX) *PgUserRepository {
	return &PgUserRepository{db: db}
}

const userColumns = `id, email, password, COALESCE(first_name, ''), COALESCE(last_name, ''),
	COALESCE(phone, ''), COALESCE(phone_country_code, ''), role, email_verified, created_at, updated_at`

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *PgUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}

func (r *PgUserRepository) UpdateProfile(ctx context.Context, id string, update UserUpdate) (domain.User, error) {
	query := `
		UPDATE users SET
			first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			phone = COALESCE($4, phone),
			phone_country_code = COALESCE($5, phone_country_code),
			updated_at = $6
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, query,
		id,
		update.FirstName,
		update.LastName,
		update.Phone,
		update.PhoneCountryCode,
		update.UpdatedAt,
	))
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	var role string
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&u.PhoneCountryCode,
		&role,
		&u.EmailVerifiedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	return u, err
}
