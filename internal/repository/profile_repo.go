package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"wonnda/internal/domain"
)

// ProfileRepository lee el perfil de rol asociado a un usuario.
type ProfileRepository interface {
	GetRetailerByUserID(ctx context.Context, userID string) (domain.RetailerProfile, error)
	GetSupplierByUserID(ctx context.Context, userID string) (domain.SupplierProfile, error)
}

type PgProfileRepository struct {
	db DBTX
}

func NewPgProfileRepository(db DBTX) *PgProfileRepository {
	return &PgProfileRepository{db: db}
}

func (r *PgProfileRepository) GetRetailerByUserID(ctx context.Context, userID string) (domain.RetailerProfile, error) {
	const query = `
		SELECT id, user_id, COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(phone, ''),
			COALESCE(phone_country_code, ''), company_name, address, company_type, annual_revenue,
			COALESCE(website, ''), business_goals, has_launched_product, interested_categories,
			product_description, auto_create_request, get_direct_introductions, created_at, updated_at
		FROM retailers
		WHERE user_id = $1
	`
	var p domain.RetailerProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.Phone,
		&p.PhoneCountryCode,
		&p.CompanyName,
		&p.Address,
		&p.CompanyType,
		&p.AnnualRevenue,
		&p.Website,
		&p.BusinessGoals,
		&p.HasLaunchedProduct,
		&p.InterestedCategories,
		&p.ProductDescription,
		&p.AutoCreateRequest,
		&p.GetDirectIntroductions,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.RetailerProfile{}, err
	}
	return p, err
}

func (r *PgProfileRepository) GetSupplierByUserID(ctx context.Context, userID string) (domain.SupplierProfile, error) {
	const query = `
		SELECT id, user_id, COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(phone, ''),
			COALESCE(phone_country_code, ''), company_name, address, website, company_type, user_role,
			team_size, annual_revenue, offerings, production_types, moq_quantities,
			production_outsourcing, manufacturing_countries, support_goals, company_description,
			created_at, updated_at
		FROM suppliers
		WHERE user_id = $1
	`
	var p domain.SupplierProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.Phone,
		&p.PhoneCountryCode,
		&p.CompanyName,
		&p.Address,
		&p.Website,
		&p.CompanyType,
		&p.UserRole,
		&p.TeamSize,
		&p.AnnualRevenue,
		&p.Offerings,
		&p.ProductionTypes,
		&p.MOQQuantities,
		&p.ProductionOutsourcing,
		&p.ManufacturingCountries,
		&p.SupportGoals,
		&p.CompanyDescription,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.SupplierProfile{}, err
	}
	return p, err
}
