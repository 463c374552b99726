// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Member is the core entity of the system, representing a registered account.
// The password is only ever carried as a bcrypt hash; handlers and services
// must never log it.
type Member struct {
	ID           uuid.UUID // The unique identifier for the member.
	Email        string    // Unique login identifier; enforced by a database constraint.
	PasswordHash string    // Salted one-way hash of the member's password.
	Name         string    // Display name.
	Phone        string    // Optional contact phone, used by account-recovery flows.
	Roles        Roles     // Granted roles, created together with the account.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}

// HasRole reports whether the member holds the given role.
func (m *Member) HasRole(role Role) bool {
	return m.Roles.Contains(role)
}

// Summary is the safe projection of a Member returned by login and lookup
// operations. It never includes the password hash.
type Summary struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Phone string    `json:"phone,omitempty"`
	Roles []string  `json:"roles"`
}

// Summarize builds the response projection for a member.
func Summarize(m *Member) *Summary {
	return &Summary{
		ID:    m.ID,
		Email: m.Email,
		Name:  m.Name,
		Phone: m.Phone,
		Roles: m.Roles.ToStrings(),
	}
}
