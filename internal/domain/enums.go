package domain

import "slices"

// Conjuntos cerrados usados por los schemas de validación y por los CHECK de la migración.
// Cualquier cambio aquí debe reflejarse en internal/db/migrations.

var RetailerCompanyTypes = []string{
	"Agency",
	"Consultant",
	"Corporation",
	"Creator",
	"D2C Brand",
	"Importer",
	"Marketplace",
	"Online Retailer",
	"Retailer",
	"Small Business",
	"Wholesaler",
}

var RetailerAnnualRevenues = []string{
	"Under $100K",
	"$100K - $500K",
	"$500K - $1M",
	"$1M - $5M",
	"$5M - $10M",
	"$10M - $50M",
	"$50M+",
	"Prefer not to say",
}

var BusinessGoals = []string{
	"Find suppliers",
	"Source products",
	"Source packaging",
	"Source raw materials",
	"Manage suppliers",
	"Finance inventory",
	"Streamline sourcing",
}

var ProductCategories = []string{
	"Beauty & Personal Care",
	"Fashion",
	"Food & Beverages",
	"Health & Supplements",
	"Home & Living",
	"Pet Supplies",
	"Packaging",
}

var SupplierCompanyTypes = []string{
	"Distributor",
	"Manufacturer",
	"Packaging Supplier",
	"Raw Ingredient Supplier",
	"Service Provider",
	"Sourcing Agency",
}

var SupplierUserRoles = []string{
	"Founder/CEO",
	"Senior-Level Management",
	"Mid-Level Management",
	"Junior-Level",
	"Intern",
	"Sales Manager",
	"Export Manager",
	"Other",
}

var TeamSizes = []string{
	"1-10",
	"11-50",
	"51-100",
	"101-500",
	"501-1000",
	"1000+",
}

var SupplierAnnualRevenues = []string{
	"under-100k",
	"100k-250k",
	"250k-1m",
	"1m-5m",
	"5m-10m",
	"10m-50m",
	"50m+",
}

var ProductionOutsourcingModes = []string{
	"Inhouse",
	"Outsourced",
}

// OneOf indica si value pertenece al conjunto set.
func OneOf(set []string, value string) bool {
	return slices.Contains(set, value)
}
