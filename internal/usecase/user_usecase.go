// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"giftlink/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput defines the data required to update a user's name.
// Email identifies the account to update.
type UpdateProfileInput struct {
	Email     string
	FirstName string
	LastName  string
}

// --- Output DTOs ---

// RegisterOutput returns the session token and email of the new account.
type RegisterOutput struct {
	AuthToken string
	Email     string
}

// LoginOutput returns the session token and the user's display identity.
type LoginOutput struct {
	AuthToken string
	UserName  string
	UserEmail string
}

// UpdateProfileOutput returns a fresh session token after a profile change.
type UpdateProfileOutput struct {
	AuthToken string
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*UpdateProfileOutput, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
