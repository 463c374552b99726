package service

import (
	"time"

	"member/internal/domain/entity"
)

// Claims is the signed payload carried inside every token. Roles are a
// snapshot taken at issue time; they are not re-fetched when the token is
// later decoded, so role changes only take effect after the token expires.
type Claims struct {
	Subject  string           // The member's email address.
	Roles    []string         // Role snapshot copied at issue time.
	Kind     entity.TokenKind // Access or refresh.
	IssuedAt time.Time
	Expiry   time.Time
}

// TokenCodec encodes and decodes signed bearer tokens. Implementations sign
// with a process-wide symmetric key derived once at startup; the key is
// immutable afterwards.
type TokenCodec interface {
	// Issue builds claims for the subject with issued-at = now and
	// expiry = now + TTL(kind), and returns the signed compact token.
	Issue(subject string, roles []string, kind entity.TokenKind) (string, error)

	// Decode verifies the signature and expiry and returns the claims.
	// Failures map onto the domain taxonomy: ErrTokenMalformed,
	// ErrTokenSignatureInvalid, ErrTokenExpired.
	Decode(token string) (*Claims, error)

	// RemainingTTL returns expiry minus now for a token whose signature
	// verifies, clamped at zero. It is used to size blacklist entries so
	// they never outlive the token's own validity window.
	RemainingTTL(token string) (time.Duration, error)
}
