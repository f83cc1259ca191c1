package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims represents the externally-issued access token payload. Token
// issuance lives outside this service; the middleware only validates and
// extracts the identity.
type JWTClaims struct {
	UserID     string   `json:"user_id"`
	Role       UserRole `json:"role"`
	Email      string   `json:"email"`
	FullName   string   `json:"full_name"`
	Department string   `json:"department,omitempty"`
	jwt.RegisteredClaims
}
