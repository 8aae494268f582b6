package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"wonnda/internal/domain"
)

// AccountRepository crea el usuario y su perfil de rol como una unidad.
type AccountRepository interface {
	CreateRetailerAccount(ctx context.Context, user domain.User, profile domain.RetailerProfile) error
	CreateSupplierAccount(ctx context.Context, user domain.User, profile domain.SupplierProfile) error
}

// PgAccountRepository inserta users + perfil y consume los códigos del email en una transacción.
type PgAccountRepository struct {
	db TxBeginner
}

func NewPgAccountRepository(db TxBeginner) *PgAccountRepository {
	return &PgAccountRepository{db: db}
}

func (r *PgAccountRepository) CreateRetailerAccount(ctx context.Context, user domain.User, profile domain.RetailerProfile) error {
	return r.withAccountTx(ctx, user, func(tx pgx.Tx) error {
		const query = `
			INSERT INTO retailers (
				id, user_id, first_name, last_name, phone, phone_country_code,
				company_name, address, company_type, annual_revenue, website,
				business_goals, has_launched_product, interested_categories,
				product_description, auto_create_request, get_direct_introductions,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		`
		_, err := tx.Exec(ctx, query,
			profile.ID,
			profile.UserID,
			profile.FirstName,
			profile.LastName,
			profile.Phone,
			profile.PhoneCountryCode,
			profile.CompanyName,
			profile.Address,
			profile.CompanyType,
			profile.AnnualRevenue,
			nullableText(profile.Website),
			nonNil(profile.BusinessGoals),
			profile.HasLaunchedProduct,
			nonNil(profile.InterestedCategories),
			profile.ProductDescription,
			profile.AutoCreateRequest,
			profile.GetDirectIntroductions,
			profile.CreatedAt,
			profile.UpdatedAt,
		)
		return err
	})
}

func (r *PgAccountRepository) CreateSupplierAccount(ctx context.Context, user domain.User, profile domain.SupplierProfile) error {
	return r.withAccountTx(ctx, user, func(tx pgx.Tx) error {
		const query = `
			INSERT INTO suppliers (
				id, user_id, first_name, last_name, phone, phone_country_code,
				company_name, address, website, company_type, user_role, team_size,
				annual_revenue, offerings, production_types, moq_quantities,
				production_outsourcing, manufacturing_countries, support_goals,
				company_description, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		`
		_, err := tx.Exec(ctx, query,
			profile.ID,
			profile.UserID,
			profile.FirstName,
			profile.LastName,
			profile.Phone,
			profile.PhoneCountryCode,
			profile.CompanyName,
			profile.Address,
			profile.Website,
			profile.CompanyType,
			profile.UserRole,
			profile.TeamSize,
			profile.AnnualRevenue,
			nonNil(profile.Offerings),
			nonNil(profile.ProductionTypes),
			nonNil(profile.MOQQuantities),
			profile.ProductionOutsourcing,
			nonNil(profile.ManufacturingCountries),
			nonNil(profile.SupportGoals),
			profile.CompanyDescription,
			profile.CreatedAt,
			profile.UpdatedAt,
		)
		return err
	})
}

// withAccountTx inserta el usuario, ejecuta insertProfile y borra los códigos del email.
// Cualquier error revierte todo; una violación de unicidad en users se reporta como ErrDuplicateEmail.
func (r *PgAccountRepository) withAccountTx(ctx context.Context, user domain.User, insertProfile func(pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertUser = `
		INSERT INTO users (
			id, email, password, first_name, last_name, phone, phone_country_code,
			role, email_verified, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	if _, err := tx.Exec(ctx, insertUser,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.PhoneCountryCode,
		string(user.Role),
		user.EmailVerifiedAt,
		user.CreatedAt,
		user.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	if err := insertProfile(tx); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM email_verification_codes WHERE email = $1`, user.Email); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
