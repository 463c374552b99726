// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"member/config"
	"member/internal/domain/entity"
	domainerrors "member/internal/domain/errors"
	"member/internal/domain/service"
)

// tokenClaims is the wire shape of the signed payload.
type tokenClaims struct {
	Roles []string `json:"roles"`
	Kind  string   `json:"type"`
	jwt.RegisteredClaims
}

// jwtCodec is a concrete implementation of the TokenCodec interface using the
// JWT standard with HS256. The signing key is derived once from the configured
// secret and never rotated at runtime.
type jwtCodec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTCodec is the constructor for jwtCodec.
func NewJWTCodec(cfg *config.Config) (service.TokenCodec, error) {
	if cfg.Auth.Secret == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}

	return &jwtCodec{
		secret:     []byte(cfg.Auth.Secret),
		accessTTL:  cfg.Auth.AccessTTL,
		refreshTTL: cfg.Auth.RefreshTTL,
	}, nil
}

// ttl selects the lifetime for a token kind.
func (c *jwtCodec) ttl(kind entity.TokenKind) time.Duration {
	if kind == entity.TokenKindRefresh {
		return c.refreshTTL
	}

	return c.accessTTL
}

// Issue builds and signs a token for the subject. The roles slice is copied
// into the claims as a snapshot; later role changes do not affect tokens
// already in flight.
func (c *jwtCodec) Issue(subject string, roles []string, kind entity.TokenKind) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Roles: append([]string(nil), roles...),
		Kind:  kind.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl(kind))),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return token, nil
}

// Decode verifies signature and expiry and maps failures onto the domain
// error taxonomy.
func (c *jwtCodec) Decode(tokenString string) (*service.Claims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, mapDecodeError(err)
	}

	return toDomainClaims(claims)
}

// RemainingTTL returns expiry minus now for a token whose signature still
// verifies, even when the token itself has already expired. The result sizes
// blacklist entries so they never outlive the token's validity window.
func (c *jwtCodec) RemainingTTL(tokenString string) (time.Duration, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return 0, mapDecodeError(err)
	}
	if claims.ExpiresAt == nil {
		return 0, domainerrors.ErrTokenMalformed.WrapMessage("token has no expiry claim")
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 0 {
		remaining = 0
	}

	return remaining, nil
}

func (c *jwtCodec) keyFunc(token *jwt.Token) (any, error) {
	// Ensure the signing method is what we expect.
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrSignatureInvalid
	}

	return c.secret, nil
}

// mapDecodeError folds jwt/v5 sentinel errors into the domain taxonomy.
// Expiry is checked before signature state leaks into the message; the
// underlying HMAC comparison is constant-time inside the jwt library.
func mapDecodeError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domainerrors.ErrTokenExpired.WrapMessage("token expired")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return domainerrors.ErrTokenSignatureInvalid.WrapMessage("signature verification failed")
	default:
		return domainerrors.ErrTokenMalformed.WrapMessage("failed to parse token structure")
	}
}

func toDomainClaims(claims *tokenClaims) (*service.Claims, error) {
	kind, err := kindFromString(claims.Kind)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, domainerrors.ErrTokenMalformed.WrapMessage("missing required claims")
	}

	return &service.Claims{
		Subject:  claims.Subject,
		Roles:    claims.Roles,
		Kind:     kind,
		IssuedAt: claims.IssuedAt.Time,
		Expiry:   claims.ExpiresAt.Time,
	}, nil
}

func kindFromString(s string) (entity.TokenKind, error) {
	switch s {
	case entity.TokenKindAccess.String():
		return entity.TokenKindAccess, nil
	case entity.TokenKindRefresh.String():
		return entity.TokenKindRefresh, nil
	default:
		return 0, domainerrors.ErrTokenMalformed.WrapMessage("unknown token kind")
	}
}
