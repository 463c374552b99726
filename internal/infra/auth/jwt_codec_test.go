package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"member/config"
	"member/internal/domain/entity"
	domainerrors "member/internal/domain/errors"
	"member/internal/errors"
)

func testCodecConfig(accessTTL, refreshTTL time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.Auth.Secret = "test_signing_secret_very_long_for_testing"
	cfg.Auth.AccessTTL = accessTTL
	cfg.Auth.RefreshTTL = refreshTTL

	return cfg
}

func TestJWTCodec_RequiresSecret(t *testing.T) {
	cfg := &config.Config{}
	codec, err := NewJWTCodec(cfg)
	assert.Error(t, err)
	assert.Nil(t, codec)
}

func TestJWTCodec_IssueAndDecodeRoundTrip(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig(24*time.Hour, 14*24*time.Hour))
	require.NoError(t, err)

	roles := []string{"ROLE_USER", "ROLE_ADMIN"}
	token, err := codec.Issue("alice@example.com", roles, entity.TokenKindAccess)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, roles, claims.Roles)
	assert.Equal(t, entity.TokenKindAccess, claims.Kind)
	// Expiry is exactly issued-at plus the configured access TTL.
	assert.Equal(t, claims.IssuedAt.Add(24*time.Hour).Unix(), claims.Expiry.Unix())
}

func TestJWTCodec_RefreshKindSelectsRefreshTTL(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig(time.Hour, 48*time.Hour))
	require.NoError(t, err)

	token, err := codec.Issue("bob@example.com", []string{"ROLE_USER"}, entity.TokenKindRefresh)
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, entity.TokenKindRefresh, claims.Kind)
	assert.Equal(t, claims.IssuedAt.Add(48*time.Hour).Unix(), claims.Expiry.Unix())
}

func TestJWTCodec_DecodeMalformed(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig(time.Hour, time.Hour))
	require.NoError(t, err)

	claims, err := codec.Decode("clearly-not-a-jwt")
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenMalformed))
}

func TestJWTCodec_DecodeWrongKey(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig(time.Hour, time.Hour))
	require.NoError(t, err)

	otherCfg := testCodecConfig(time.Hour, time.Hour)
	otherCfg.Auth.Secret = "a_completely_different_signing_secret"
	other, err := NewJWTCodec(otherCfg)
	require.NoError(t, err)

	token, err := other.Issue("alice@example.com", nil, entity.TokenKindAccess)
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenSignatureInvalid))
}

func TestJWTCodec_DecodeExpired(t *testing.T) {
	// A negative TTL mints a token that is already past its expiry.
	codec, err := NewJWTCodec(testCodecConfig(-time.Minute, time.Hour))
	require.NoError(t, err)

	token, err := codec.Issue("alice@example.com", []string{"ROLE_USER"}, entity.TokenKindAccess)
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
}

func TestJWTCodec_RemainingTTL(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig(time.Hour, time.Hour))
	require.NoError(t, err)

	token, err := codec.Issue("alice@example.com", nil, entity.TokenKindAccess)
	require.NoError(t, err)

	remaining, err := codec.RemainingTTL(token)
	require.NoError(t, err)
	assert.Greater(t, remaining, 59*time.Minute)
	assert.LessOrEqual(t, remaining, time.Hour)
}

func TestJWTCodec_RemainingTTLOfExpiredTokenIsZero(t *testing.T) {
	codec, err := NewJWTCodec(testCodecConfig(-time.Minute, time.Hour))
	require.NoError(t, err)

	token, err := codec.Issue("alice@example.com", nil, entity.TokenKindAccess)
	require.NoError(t, err)

	// Signature still verifies, so the expired token can be measured.
	remaining, err := codec.RemainingTTL(token)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), remaining)
}
