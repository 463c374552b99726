// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"member/internal/domain/entity"
	"member/internal/domain/service"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new member.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	AuthCode string
}

// LoginInput defines the data required for a member to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created member's basic information.
type RegisterOutput struct {
	Member *entity.Summary
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	Member *entity.Summary
	Tokens entity.TokenPair
}

// RefreshOutput returns the replacement access token minted against a valid
// refresh token. The refresh token itself is not rotated.
type RefreshOutput struct {
	AccessToken string
}

// SessionUsecase defines the interface for authentication and session
// lifecycle operations. This is the contract that the delivery layer
// (API handlers and the authentication middleware) depends on.
type SessionUsecase interface {
	// Register creates a new member account after the email has passed
	// code verification.
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// Login checks credentials and mints an access/refresh token pair.
	// The refresh token is written to the member's single refresh slot,
	// superseding any previous session.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Refresh validates a presented refresh token against the stored slot
	// and mints a new access token.
	Refresh(ctx context.Context, refreshToken string) (*RefreshOutput, error)

	// Logout invalidates the presented access token and clears the
	// member's refresh slot. Calling it twice is not an error.
	Logout(ctx context.Context, accessToken string) error

	// ValidateAccess decodes an access token and checks it against the
	// blacklist. It returns the token's claims when the session is live.
	ValidateAccess(ctx context.Context, accessToken string) (*service.Claims, error)
}
