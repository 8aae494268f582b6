package wizard

import "wonnda/internal/domain"

var (
	credentialsStep = Step{
		ID:    StepCredentials,
		Title: "Create your account",
		Fields: []Field{
			{Name: "email", Label: "Work email", Kind: KindEmail, Required: true},
			{Name: "password", Label: "Password", Kind: KindPassword, Required: true},
		},
		Action: ActionSendOTP,
		decode: decodeAs[CredentialsAnswer],
	}
	otpStep = Step{
		ID:     StepOTP,
		Title:  "Verify your email",
		Fields: []Field{{Name: "otp", Label: "Verification code", Kind: KindOTP, Required: true}},
		Action: ActionVerifyOTP,
		decode: decodeAs[OTPAnswer],
	}
	personalInfoStep = Step{
		ID:    StepPersonalInfo,
		Title: "Tell us about yourself",
		Fields: []Field{
			{Name: "firstName", Label: "First name", Kind: KindText, Required: true},
			{Name: "lastName", Label: "Last name", Kind: KindText, Required: true},
			{Name: "phoneCountryCode", Label: "Country code", Kind: KindText, Required: true},
			{Name: "phone", Label: "Phone number", Kind: KindPhone, Required: true},
		},
		decode: decodeAs[PersonalInfoAnswer],
	}
)

var retailerSteps = []Step{
	credentialsStep,
	otpStep,
	personalInfoStep,
	{
		ID:    StepCompanyInfo,
		Title: "About your company",
		Fields: []Field{
			{Name: "companyName", Label: "Company name", Kind: KindText, Required: true},
			{Name: "address", Label: "Address", Kind: KindText, Required: true},
			{Name: "companyType", Label: "Company type", Kind: KindSelect, Required: true, Options: domain.RetailerCompanyTypes},
			{Name: "annualRevenue", Label: "Annual revenue", Kind: KindSelect, Required: true, Options: domain.RetailerAnnualRevenues},
			{Name: "website", Label: "Website", Kind: KindURL},
		},
		decode: decodeAs[RetailerCompanyAnswer],
	},
	{
		ID:     StepBusinessGoals,
		Title:  "What are your goals?",
		Fields: []Field{{Name: "businessGoals", Label: "Business goals", Kind: KindMultiSelect, Required: true, Options: domain.BusinessGoals}},
		decode: decodeAs[BusinessGoalsAnswer],
	},
	{
		ID:     StepLaunchExperience,
		Title:  "Have you launched a product before?",
		Fields: []Field{{Name: "hasLaunchedProduct", Label: "Launched a product", Kind: KindBoolean, Required: true}},
		decode: decodeAs[LaunchExperienceAnswer],
	},
	{
		ID:     StepCategoryInterests,
		Title:  "Which categories interest you?",
		Fields: []Field{{Name: "interestedCategories", Label: "Categories", Kind: KindMultiSelect, Required: true, Options: domain.ProductCategories}},
		decode: decodeAs[CategoryInterestsAnswer],
	},
	{
		ID:    StepProductPreferences,
		Title: "What do you want to source?",
		Fields: []Field{
			{Name: "productDescription", Label: "Product description", Kind: KindTextarea, Required: true},
			{Name: "autoCreateRequest", Label: "Create a sourcing request for me", Kind: KindBoolean},
			{Name: "getDirectIntroductions", Label: "Introduce me to matching suppliers", Kind: KindBoolean},
		},
		Action: ActionCreateAccount,
		decode: decodeAs[ProductPreferencesAnswer],
	},
}

var supplierSteps = []Step{
	credentialsStep,
	otpStep,
	personalInfoStep,
	{
		ID:    StepCompanyInfo,
		Title: "About your company",
		Fields: []Field{
			{Name: "companyName", Label: "Company name", Kind: KindText, Required: true},
			{Name: "address", Label: "Address", Kind: KindText, Required: true},
			{Name: "website", Label: "Website", Kind: KindURL, Required: true},
		},
		decode: decodeAs[SupplierCompanyAnswer],
	},
	{
		ID:     StepCompanyType,
		Title:  "What type of company are you?",
		Fields: []Field{{Name: "companyType", Label: "Company type", Kind: KindSelect, Required: true, Options: domain.SupplierCompanyTypes}},
		decode: decodeAs[CompanyTypeAnswer],
	},
	{
		ID:     StepUserRole,
		Title:  "What is your role?",
		Fields: []Field{{Name: "userRole", Label: "Role", Kind: KindSelect, Required: true, Options: domain.SupplierUserRoles}},
		decode: decodeAs[UserRoleAnswer],
	},
	{
		ID:    StepTeamRevenue,
		Title: "Team and revenue",
		Fields: []Field{
			{Name: "teamSize", Label: "Team size", Kind: KindSelect, Required: true, Options: domain.TeamSizes},
			{Name: "annualRevenue", Label: "Annual revenue", Kind: KindSelect, Required: true, Options: domain.SupplierAnnualRevenues},
		},
		decode: decodeAs[TeamRevenueAnswer],
	},
	{
		ID:    StepOfferings,
		Title: "What do you offer?",
		Fields: []Field{
			{Name: "offerings", Label: "Offerings", Kind: KindTagList, Required: true},
			{Name: "productionTypes", Label: "Production types", Kind: KindTagList, Required: true},
			{Name: "moqQuantities", Label: "Minimum order quantities", Kind: KindMOQList},
		},
		decode: decodeAs[OfferingsAnswer],
	},
	{
		ID:    StepProductionFacilities,
		Title: "Production facilities",
		Fields: []Field{
			{Name: "productionOutsourcing", Label: "Production", Kind: KindSelect, Required: true, Options: domain.ProductionOutsourcingModes},
			{Name: "manufacturingCountries", Label: "Manufacturing countries", Kind: KindTagList, Required: true},
		},
		decode: decodeAs[FacilitiesAnswer],
	},
	{
		ID:     StepSupportGoals,
		Title:  "How can we help?",
		Fields: []Field{{Name: "supportGoals", Label: "Support goals", Kind: KindTagList, Required: true}},
		decode: decodeAs[SupportGoalsAnswer],
	},
	{
		ID:     StepCompanyDescription,
		Title:  "Describe your company",
		Fields: []Field{{Name: "companyDescription", Label: "Company description", Kind: KindTextarea, Required: true}},
		Action: ActionCreateAccount,
		decode: decodeAs[DescriptionAnswer],
	},
}
