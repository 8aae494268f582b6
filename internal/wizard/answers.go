package wizard

import "wonnda/internal/validation"

// Answer es la respuesta tipada de un paso. Cada paso tiene su propio tipo; el acumulador
// final (RetailerSignup o SupplierSignup) se arma solo al terminar el wizard.
type Answer interface {
	StepID() string
}

type retailerAnswer interface {
	Answer
	applyRetailer(*validation.RetailerSignup)
}

type supplierAnswer interface {
	Answer
	applySupplier(*validation.SupplierSignup)
}

type CredentialsAnswer struct{ validation.Credentials }

func (CredentialsAnswer) StepID() string { return StepCredentials }
func (a CredentialsAnswer) applyRetailer(s *validation.RetailerSignup) {
	s.Credentials = a.Credentials
}
func (a CredentialsAnswer) applySupplier(s *validation.SupplierSignup) {
	s.Credentials = a.Credentials
}

type OTPAnswer struct{ validation.OTPConfirmation }

func (OTPAnswer) StepID() string { return StepOTP }

type PersonalInfoAnswer struct{ validation.PersonalInfo }

func (PersonalInfoAnswer) StepID() string { return StepPersonalInfo }
func (a PersonalInfoAnswer) applyRetailer(s *validation.RetailerSignup) {
	s.PersonalInfo = a.PersonalInfo
}
func (a PersonalInfoAnswer) applySupplier(s *validation.SupplierSignup) {
	s.PersonalInfo = a.PersonalInfo
}

type RetailerCompanyAnswer struct{ validation.RetailerCompanyInfo }

func (RetailerCompanyAnswer) StepID() string { return StepCompanyInfo }
func (a RetailerCompanyAnswer) applyRetailer(s *validation.RetailerSignup) {
	s.RetailerCompanyInfo = a.RetailerCompanyInfo
}

type BusinessGoalsAnswer struct{ validation.RetailerBusinessGoals }

func (BusinessGoalsAnswer) StepID() string { return StepBusinessGoals }
func (a BusinessGoalsAnswer) applyRetailer(s *validation.RetailerSignup) {
	s.RetailerBusinessGoals = a.RetailerBusinessGoals
}

type LaunchExperienceAnswer struct{ validation.LaunchExperience }

func (LaunchExperienceAnswer) StepID() string { return StepLaunchExperience }
func (a LaunchExperienceAnswer) applyRetailer(s *validation.RetailerSignup) {
	s.LaunchExperience = a.LaunchExperience
}

type CategoryInterestsAnswer struct{ validation.CategoryInterests }

func (CategoryInterestsAnswer) StepID() string { return StepCategoryInterests }
func (a CategoryInterestsAnswer) applyRetailer(s *validation.RetailerSignup) {
	s.CategoryInterests = a.CategoryInterests
}

type ProductPreferencesAnswer struct{ validation.ProductPreferences }

func (ProductPreferencesAnswer) StepID() string { return StepProductPreferences }
func (a ProductPreferencesAnswer) applyRetailer(s *validation.RetailerSignup) {
	s.ProductPreferences = a.ProductPreferences
	s.ProductPreferences.ApplyDefaults()
}

type SupplierCompanyAnswer struct{ validation.SupplierCompanyInfo }

func (SupplierCompanyAnswer) StepID() string { return StepCompanyInfo }
func (a SupplierCompanyAnswer) applySupplier(s *validation.SupplierSignup) {
	s.SupplierCompanyInfo = a.SupplierCompanyInfo
}

type CompanyTypeAnswer struct{ validation.SupplierCompanyType }

func (CompanyTypeAnswer) StepID() string { return StepCompanyType }
func (a CompanyTypeAnswer) applySupplier(s *validation.SupplierSignup) {
	s.SupplierCompanyType = a.SupplierCompanyType
}

type UserRoleAnswer struct{ validation.SupplierUserRole }

func (UserRoleAnswer) StepID() string { return StepUserRole }
func (a UserRoleAnswer) applySupplier(s *validation.SupplierSignup) {
	s.SupplierUserRole = a.SupplierUserRole
}

type TeamRevenueAnswer struct{ validation.SupplierScale }

func (TeamRevenueAnswer) StepID() string { return StepTeamRevenue }
func (a TeamRevenueAnswer) applySupplier(s *validation.SupplierSignup) {
	s.SupplierScale = a.SupplierScale
}

type OfferingsAnswer struct{ validation.SupplierOfferings }

func (OfferingsAnswer) StepID() string { return StepOfferings }
func (a OfferingsAnswer) applySupplier(s *validation.SupplierSignup) {
	s.SupplierOfferings = a.SupplierOfferings
}

type FacilitiesAnswer struct{ validation.SupplierFacilities }

func (FacilitiesAnswer) StepID() string { return StepProductionFacilities }
func (a FacilitiesAnswer) applySupplier(s *validation.SupplierSignup) {
	s.SupplierFacilities = a.SupplierFacilities
}

type SupportGoalsAnswer struct{ validation.SupplierSupportGoals }

func (SupportGoalsAnswer) StepID() string { return StepSupportGoals }
func (a SupportGoalsAnswer) applySupplier(s *validation.SupplierSignup) {
	s.SupplierSupportGoals = a.SupplierSupportGoals
}

type DescriptionAnswer struct{ validation.SupplierDescription }

func (DescriptionAnswer) StepID() string { return StepCompanyDescription }
func (a DescriptionAnswer) applySupplier(s *validation.SupplierSignup) {
	s.SupplierDescription = a.SupplierDescription
}
