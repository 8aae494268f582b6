package domain

import "time"

// RetailerProfile guarda los datos del wizard de retailer (1:1 con User).
type RetailerProfile struct {
	ID                     string    `json:"id"`
	UserID                 string    `json:"userId"`
	FirstName              string    `json:"firstName"`
	LastName               string    `json:"lastName"`
	Phone                  string    `json:"phone"`
	PhoneCountryCode       string    `json:"phoneCountryCode"`
	CompanyName            string    `json:"companyName"`
	Address                string    `json:"address"`
	CompanyType            string    `json:"companyType"`
	AnnualRevenue          string    `json:"annualRevenue"`
	Website                string    `json:"website,omitempty"`
	BusinessGoals          []string  `json:"businessGoals"`
	HasLaunchedProduct     bool      `json:"hasLaunchedProduct"`
	InterestedCategories   []string  `json:"interestedCategories"`
	ProductDescription     string    `json:"productDescription"`
	AutoCreateRequest      bool      `json:"autoCreateRequest"`
	GetDirectIntroductions bool      `json:"getDirectIntroductions"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// MOQ es un par tipo/cantidad de pedido mínimo declarado por el proveedor.
type MOQ struct {
	Type     string `json:"type"`
	Quantity string `json:"quantity"`
}

// SupplierProfile guarda los datos del wizard de proveedor (1:1 con User).
type SupplierProfile struct {
	ID                     string    `json:"id"`
	UserID                 string    `json:"userId"`
	FirstName              string    `json:"firstName"`
	LastName               string    `json:"lastName"`
	Phone                  string    `json:"phone"`
	PhoneCountryCode       string    `json:"phoneCountryCode"`
	CompanyName            string    `json:"companyName"`
	Address                string    `json:"address"`
	Website                string    `json:"website"`
	CompanyType            string    `json:"companyType"`
	UserRole               string    `json:"userRole"`
	TeamSize               string    `json:"teamSize"`
	AnnualRevenue          string    `json:"annualRevenue"`
	Offerings              []string  `json:"offerings"`
	ProductionTypes        []string  `json:"productionTypes"`
	MOQQuantities          []MOQ     `json:"moqQuantities"`
	ProductionOutsourcing  string    `json:"productionOutsourcing"`
	ManufacturingCountries []string  `json:"manufacturingCountries"`
	SupportGoals           []string  `json:"supportGoals"`
	CompanyDescription     string    `json:"companyDescription"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}
