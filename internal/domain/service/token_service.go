package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims embedded in issued auth tokens.
type Claims struct {
	UserID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed token whose subject is the given user ID.
	Issue(userID uuid.UUID) (string, error)

	// Validate checks the signature (and expiry, when present) of a token
	// string and returns its claims.
	Validate(tokenString string) (*Claims, error)
}
