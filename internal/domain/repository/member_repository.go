// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"member/internal/domain/entity"
)

// ErrMemberNotFound is a domain-specific error returned when a member is not found.
var ErrMemberNotFound = errors.New("member not found")

// MemberRepository defines the standard operations for member persistence.
// The application layer depends on this interface, not the concrete implementation.
type MemberRepository interface {
	// FindByEmail retrieves a single member by their unique email address.
	FindByEmail(ctx context.Context, email string) (*entity.Member, error)

	// FindByPhone retrieves a single member by their phone number.
	// Used by the account-recovery flows.
	FindByPhone(ctx context.Context, phone string) (*entity.Member, error)

	// Create persists a new member together with their roles.
	Create(ctx context.Context, member *entity.Member) error

	// Update modifies an existing member entity in the storage.
	Update(ctx context.Context, member *entity.Member) error

	// Delete removes a member and their roles.
	Delete(ctx context.Context, email string) error
}
