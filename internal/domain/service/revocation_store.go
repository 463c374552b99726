package service

import (
	"context"
	"errors"
	"time"
)

// ErrKeyAbsent is returned by Get when the key does not exist or has expired.
var ErrKeyAbsent = errors.New("key absent")

// Key-naming conventions used by the session and verification layers. The
// store itself attaches no semantics beyond these prefixes; blacklist entries
// use the raw access-token string as the key.
const (
	// RefreshKeyPrefix + email holds the single currently-valid refresh
	// token for that account.
	RefreshKeyPrefix = "RT:"
	// AuthCodeKeyPrefix + email holds the pending verification code.
	AuthCodeKeyPrefix = "AuthCode "
)

// RevocationStore is the external key-value ledger recording blacklisted
// access tokens, the refresh slot per account, and pending verification
// codes. Implementations must support atomic per-key put/get/delete with TTL;
// no multi-key transactions are assumed.
//
// Store unavailability must surface as domain ErrStoreUnavailable so that
// token validation can fail closed instead of silently treating a token as
// valid.
type RevocationStore interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// RefreshKey builds the refresh-slot key for an account.
func RefreshKey(email string) string {
	return RefreshKeyPrefix + email
}

// AuthCodeKey builds the verification-code key for an email address.
func AuthCodeKey(email string) string {
	return AuthCodeKeyPrefix + email
}
