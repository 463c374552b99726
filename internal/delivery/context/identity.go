package context

import (
	"context"

	"member/internal/domain/entity"
)

// KeyPrincipal is the key for storing the authenticated principal in context.
const KeyPrincipal ContextKey = "principal"

// Principal identifies the authenticated caller of a request. It is attached
// by the authentication middleware and read by role guards and handlers.
// Roles come from the token claims, so a role change on the account becomes
// visible only once a fresh token is issued.
type Principal struct {
	Email string
	Roles entity.Roles
}

// HasRole reports whether the principal holds the given role.
func (p *Principal) HasRole(role entity.Role) bool {
	return p.Roles.Contains(role)
}

// WithPrincipal returns a new context carrying the authenticated principal.
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, KeyPrincipal, principal)
}

// GetPrincipal extracts the authenticated principal from the context.
// The second return is false for unauthenticated requests.
func GetPrincipal(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(KeyPrincipal).(*Principal)
	if !ok || principal == nil {
		return nil, false
	}

	return principal, true
}
