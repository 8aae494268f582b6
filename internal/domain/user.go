package domain

import "time"

// Role identifica el tipo de cuenta y, por lo tanto, la tabla de perfil asociada.
type Role string

const (
	RoleRetailer Role = "retailer"
	RoleSupplier Role = "supplier"
)

// Valid indica si el rol pertenece al conjunto cerrado de roles.
func (r Role) Valid() bool {
	return r == RoleRetailer || r == RoleSupplier
}

// DashboardPath devuelve la ruta del dashboard propio del rol.
func (r Role) DashboardPath() string {
	if r == RoleSupplier {
		return "/dashboard/supplier"
	}
	return "/dashboard/retailer"
}

type User struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	FirstName        string     `json:"firstName,omitempty"`
	LastName         string     `json:"lastName,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	PhoneCountryCode string     `json:"phoneCountryCode,omitempty"`
	Role             Role       `json:"role"`
	EmailVerifiedAt  *time.Time `json:"emailVerified,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// FullName une nombre y apellido como los muestra el dashboard.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
