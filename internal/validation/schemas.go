package validation

import "wonnda/internal/domain"

// Login valida el formulario de inicio de sesión.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// EmailVerificationRequest valida POST /api/auth/send-verification.
type EmailVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// EmailVerificationConfirm valida POST /api/auth/verify-email.
type EmailVerificationConfirm struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"len=4,otp"`
}

// Credentials es el paso 1 (email y contraseña), común a ambos roles.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"password"`
}

// OTPConfirmation es el paso 2, común a ambos roles.
type OTPConfirmation struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"len=4,otp"`
}

// PersonalInfo es el paso 3, común a ambos roles.
type PersonalInfo struct {
	FirstName        string `json:"firstName" validate:"required,max=50"`
	LastName         string `json:"lastName" validate:"required,max=50"`
	Phone            string `json:"phone" validate:"required,phone"`
	PhoneCountryCode string `json:"phoneCountryCode" validate:"required"`
}

// RetailerCompanyInfo es el paso 4 del retailer.
type RetailerCompanyInfo struct {
	CompanyName   string `json:"companyName" validate:"required,max=100"`
	Address       string `json:"address" validate:"required,max=200"`
	CompanyType   string `json:"companyType" validate:"required,retailer_company_type"`
	AnnualRevenue string `json:"annualRevenue" validate:"required,retailer_revenue"`
	Website       string `json:"website,omitempty" validate:"omitempty,url"`
}

type RetailerBusinessGoals struct {
	BusinessGoals []string `json:"businessGoals" validate:"required,min=1,dive,business_goal"`
}

type LaunchExperience struct {
	HasLaunchedProduct *bool `json:"hasLaunchedProduct" validate:"required"`
}

type CategoryInterests struct {
	InterestedCategories []string `json:"interestedCategories" validate:"required,min=1,dive,product_category"`
}

// ProductPreferences es el último paso del retailer. Las preferencias nulas valen true.
type ProductPreferences struct {
	ProductDescription     string `json:"productDescription" validate:"required,max=1000"`
	AutoCreateRequest      *bool  `json:"autoCreateRequest,omitempty"`
	GetDirectIntroductions *bool  `json:"getDirectIntroductions,omitempty"`
}

// ApplyDefaults completa las preferencias omitidas.
func (p *ProductPreferences) ApplyDefaults() {
	if p.AutoCreateRequest == nil {
		p.AutoCreateRequest = boolPtr(true)
	}
	if p.GetDirectIntroductions == nil {
		p.GetDirectIntroductions = boolPtr(true)
	}
}

// RetailerSignup es el payload completo de alta de retailer (unión de los pasos).
type RetailerSignup struct {
	Credentials
	PersonalInfo
	RetailerCompanyInfo
	RetailerBusinessGoals
	LaunchExperience
	CategoryInterests
	ProductPreferences
}

// SupplierCompanyInfo es el paso 4 del proveedor; aquí el sitio web es obligatorio.
type SupplierCompanyInfo struct {
	CompanyName string `json:"companyName" validate:"required,max=100"`
	Address     string `json:"address" validate:"required,max=200"`
	Website     string `json:"website" validate:"required,url"`
}

type SupplierCompanyType struct {
	CompanyType string `json:"companyType" validate:"required,supplier_company_type"`
}

type SupplierUserRole struct {
	UserRole string `json:"userRole" validate:"required,supplier_user_role"`
}

type SupplierScale struct {
	TeamSize      string `json:"teamSize" validate:"required,team_size"`
	AnnualRevenue string `json:"annualRevenue" validate:"required,supplier_revenue"`
}

type SupplierOfferings struct {
	Offerings       []string     `json:"offerings" validate:"required,min=1"`
	ProductionTypes []string     `json:"productionTypes" validate:"required,min=1"`
	MOQQuantities   []domain.MOQ `json:"moqQuantities"`
}

type SupplierFacilities struct {
	ProductionOutsourcing  string   `json:"productionOutsourcing" validate:"required,production_outsourcing"`
	ManufacturingCountries []string `json:"manufacturingCountries" validate:"required,min=1"`
}

type SupplierSupportGoals struct {
	SupportGoals []string `json:"supportGoals" validate:"required,min=1"`
}

type SupplierDescription struct {
	CompanyDescription string `json:"companyDescription" validate:"required,min=140,max=500"`
}

// SupplierSignup es el payload completo de alta de proveedor (unión de los pasos).
type SupplierSignup struct {
	Credentials
	PersonalInfo
	SupplierCompanyInfo
	SupplierCompanyType
	SupplierUserRole
	SupplierScale
	SupplierOfferings
	SupplierFacilities
	SupplierSupportGoals
	SupplierDescription
}

// UserUpdate valida la edición del perfil básico desde el dashboard.
type UserUpdate struct {
	FirstName        *string `json:"firstName,omitempty" validate:"omitnil,min=1,max=50"`
	LastName         *string `json:"lastName,omitempty" validate:"omitnil,min=1,max=50"`
	Phone            *string `json:"phone,omitempty" validate:"omitnil,phone"`
	PhoneCountryCode *string `json:"phoneCountryCode,omitempty" validate:"omitnil,min=1"`
}

func boolPtr(v bool) *bool {
	return &v
}
