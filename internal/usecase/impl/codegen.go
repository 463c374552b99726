package impl

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

const (
	authCodeDigits     = 6
	tempPasswordLength = 10
	tempPasswordChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// generateAuthCode returns a uniformly random six-digit verification code.
// Leading zeros are kept, so the code is always exactly six characters.
func generateAuthCode() (string, error) {
	code := make([]byte, authCodeDigits)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", errors.Wrap(err, "failed to draw random digit")
		}
		code[i] = byte('0' + n.Int64())
	}

	return string(code), nil
}

// generateTempPassword returns a random ten-character password drawn from
// uppercase letters and digits, used by the password-recovery flow.
func generateTempPassword() (string, error) {
	password := make([]byte, tempPasswordLength)
	charCount := big.NewInt(int64(len(tempPasswordChars)))
	for i := range password {
		n, err := rand.Int(rand.Reader, charCount)
		if err != nil {
			return "", errors.Wrap(err, "failed to draw random character")
		}
		password[i] = tempPasswordChars[n.Int64()]
	}

	return string(password), nil
}
