// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleAdmin indicates a platform administrator.
	RoleAdmin Role = "ADMIN"
	// RoleVendor indicates a vendor operating a shop on the marketplace.
	RoleVendor Role = "VENDOR"
	// RoleCustomer indicates a buying customer.
	RoleCustomer Role = "CUSTOMER"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleVendor, RoleCustomer:
		return true
	default:
		return false
	}
}

// CanRegister reports whether the role may be chosen at self-registration.
// Admin accounts are provisioned out of band.
func (r Role) CanRegister() bool {
	return r == RoleVendor || r == RoleCustomer
}
