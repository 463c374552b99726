package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"auth": map[string]any{
			"accessTtl":  "24h",
			"refreshTtl": "336h",
		},
		"redis": map[string]any{
			"addr": "localhost:6379",
		},
	}

	tests := []struct {
		name   string
		rawKey string
		want   string
	}{
		{"aligns with existing yaml key casing", "AUTH_ACCESSTTL", "auth.accessTtl"},
		{"nested key", "REDIS_ADDR", "redis.addr"},
		{"unknown key falls back to lowercase", "AUTH_SECRET", "auth.secret"},
		{"unknown root", "MAIL_HOST", "mail.host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.rawKey, existing))
		})
	}
}

func TestApplyAuthDefaults(t *testing.T) {
	auth := AuthConfig{Secret: "s"}
	applyAuthDefaults(&auth)

	assert.Equal(t, 24*time.Hour, auth.AccessTTL)
	assert.Equal(t, 14*24*time.Hour, auth.RefreshTTL)
	assert.Equal(t, 5*time.Minute, auth.AuthCodeTTL)
}

func TestApplyAuthDefaults_KeepsConfiguredValues(t *testing.T) {
	auth := AuthConfig{
		Secret:      "s",
		AccessTTL:   time.Hour,
		RefreshTTL:  48 * time.Hour,
		AuthCodeTTL: time.Minute,
	}
	applyAuthDefaults(&auth)

	assert.Equal(t, time.Hour, auth.AccessTTL)
	assert.Equal(t, 48*time.Hour, auth.RefreshTTL)
	assert.Equal(t, time.Minute, auth.AuthCodeTTL)
}
