package usecase

import (
	"context"

	"member/internal/domain/entity"
)

// --- Input DTOs ---

// ModifyInfoInput defines the profile fields a member may change.
type ModifyInfoInput struct {
	Email string
	Name  string
	Phone string
}

// ModifyPasswordInput defines the data required to change a password.
type ModifyPasswordInput struct {
	Email       string
	OldPassword string
	NewPassword string
}

// ForwardTempPasswordInput defines the data required to recover a lost
// password. The code must have been verified against the account's email.
type ForwardTempPasswordInput struct {
	Email    string
	Phone    string
	AuthCode string
}

// FindEmailInput defines the data required to recover a forgotten email
// by phone number.
type FindEmailInput struct {
	Phone    string
	AuthCode string
}

// WithdrawInput defines the data required to delete an account.
type WithdrawInput struct {
	Email    string
	Password string
}

// MemberUsecase defines the interface for member profile and account
// recovery operations.
type MemberUsecase interface {
	// GetMember returns the member's public profile.
	GetMember(ctx context.Context, email string) (*entity.Summary, error)

	// ModifyInfo updates the member's name and phone number.
	ModifyInfo(ctx context.Context, input ModifyInfoInput) (*entity.Summary, error)

	// ModifyPassword replaces the member's password after checking the old one.
	ModifyPassword(ctx context.Context, input ModifyPasswordInput) error

	// ForwardTempPassword mails a temporary password to the member and
	// stores its hash. The phone number must match the account on record.
	ForwardTempPassword(ctx context.Context, input ForwardTempPasswordInput) error

	// FindRegisteredEmail looks up the email registered under a phone number.
	FindRegisteredEmail(ctx context.Context, input FindEmailInput) (string, error)

	// Withdraw deletes the member's account after a password check.
	Withdraw(ctx context.Context, input WithdrawInput) error
}
