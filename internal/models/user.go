package models

// UserRole represents the roles issued by the identity provider.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleVet     UserRole = "VET"
	RoleAdopter UserRole = "ADOPTER"
)

// Valid reports whether the role is one this API understands.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleVet || r == RoleAdopter
}

// IsStaff reports whether the role belongs to shelter staff.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleVet
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
}
