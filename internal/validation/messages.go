package validation

// messages contiene el texto visible para cada combinación campo.tag.
var messages = map[string]string{
	"email.required":                               "Email is required",
	"email.email":                                  "Please enter a valid email address",
	"password.required":                            "Password is required",
	"phone.required":                               "Phone number is required",
	"phone.phone":                                  "Please enter a valid phone number",
	"otp.len":                                      "OTP must be exactly 4 digits",
	"otp.otp":                                      "OTP must contain only numbers",
	"code.len":                                     "OTP must be exactly 4 digits",
	"code.otp":                                     "OTP must contain only numbers",
	"firstName.required":                           "First name is required",
	"firstName.max":                                "First name is too long",
	"firstName.min":                                "First name is required",
	"lastName.required":                            "Last name is required",
	"lastName.max":                                 "Last name is too long",
	"lastName.min":                                 "Last name is required",
	"phoneCountryCode.required":                    "Country code is required",
	"companyName.required":                         "Company name is required",
	"companyName.max":                              "Company name is too long",
	"address.required":                             "Address is required",
	"address.max":                                  "Address is too long",
	"companyType.required":                         "Please select a company type",
	"companyType.retailer_company_type":            "Please select a company type",
	"companyType.supplier_company_type":            "Please select a company type",
	"annualRevenue.required":                       "Please select an annual revenue range",
	"annualRevenue.retailer_revenue":               "Please select an annual revenue range",
	"annualRevenue.supplier_revenue":               "Please select an annual revenue range",
	"website.url":                                  "Please enter a valid URL",
	"website.required":                             "Please enter a valid website URL",
	"businessGoals.required":                       "Please select at least one business goal",
	"businessGoals.min":                            "Please select at least one business goal",
	"businessGoals.business_goal":                  "Please select a valid business goal",
	"hasLaunchedProduct.required":                  "Please select an option",
	"interestedCategories.required":                "Please select at least one category",
	"interestedCategories.min":                     "Please select at least one category",
	"interestedCategories.product_category":        "Please select a valid category",
	"productDescription.required":                  "Please describe the product you want to source",
	"productDescription.max":                       "Description is too long",
	"userRole.required":                            "Please select your role",
	"userRole.supplier_user_role":                  "Please select your role",
	"teamSize.required":                            "Please select a team size",
	"teamSize.team_size":                           "Please select a team size",
	"offerings.required":                           "Please select at least one offering",
	"offerings.min":                                "Please select at least one offering",
	"productionTypes.required":                     "Please select at least one production type",
	"productionTypes.min":                          "Please select at least one production type",
	"productionOutsourcing.required":               "Please select a production mode",
	"productionOutsourcing.production_outsourcing": "Please select a production mode",
	"manufacturingCountries.required":              "Please select at least one manufacturing country",
	"manufacturingCountries.min":                   "Please select at least one manufacturing country",
	"supportGoals.required":                        "Please select at least one support goal",
	"supportGoals.min":                             "Please select at least one support goal",
	"companyDescription.required":                  "Company description must be at least 140 characters",
	"companyDescription.min":                       "Company description must be at least 140 characters",
	"companyDescription.max":                       "Company description must not exceed 500 characters",
	"role.required":                                "Please select an account type",
	"role.oneof":                                   "Please select an account type",
}

func messageFor(field, tag string) string {
	if msg, ok := messages[field+"."+tag]; ok {
		return msg
	}
	if tag == "required" {
		return "This field is required"
	}
	return "Invalid value"
}
