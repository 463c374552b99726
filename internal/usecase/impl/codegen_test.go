package impl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAuthCode(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		code, err := generateAuthCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9')
		}
		seen[code] = true
	}
	// Fifty draws from a million-value space collapsing to one would mean
	// the generator is broken.
	assert.Greater(t, len(seen), 1)
}

func TestGenerateTempPassword(t *testing.T) {
	for range 20 {
		password, err := generateTempPassword()
		require.NoError(t, err)
		assert.Len(t, password, 10)
		for _, c := range password {
			assert.True(t, strings.ContainsRune(tempPasswordChars, c))
		}
	}
}
