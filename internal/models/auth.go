package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the caller holds the admin role.
func (c *JWTClaims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// OwnsOrAdmin reports whether the caller is the given owner or an admin.
func (c *JWTClaims) OwnsOrAdmin(ownerID string) bool {
	if c == nil {
		return false
	}
	return c.IsAdmin() || (ownerID != "" && c.UserID == ownerID)
}
