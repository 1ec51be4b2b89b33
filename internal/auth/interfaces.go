package auth

import (
	"github.com/google/uuid"
)

// TokenService defines the interface for session token operations.
type TokenService interface {
	GenerateToken(userID uuid.UUID) (string, error)
	ValidateToken(tokenString string) (uuid.UUID, error)
}

// Compile-time interface satisfaction check
var _ TokenService = (*JWTService)(nil)
