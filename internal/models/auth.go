package models

import "github.com/golang-jwt/jwt/v5"

// UserRole scopes reviewer permissions.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
)

// JWTClaims carries the authenticated reviewer identity.
type JWTClaims struct {
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Pagination describes paged listing metadata.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
