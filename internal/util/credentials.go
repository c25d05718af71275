package util

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

const (
	passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789@#$"
	passwordLength   = 10

	loginIDMin  = 100000
	loginIDSpan = 900000
)

// GenerateShopLoginID creates a structured login identifier of the form
// SHOP-XXXXXX where X is a digit. The numeric part is always six digits.
func GenerateShopLoginID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(loginIDSpan))
	if err != nil {
		return "", errors.Wrap(err, "failed to generate login id")
	}

	return fmt.Sprintf("SHOP-%d", loginIDMin+n.Int64()), nil
}

// GenerateShopPassword creates a random 10-character password drawn from a
// mixed-case alphanumeric alphabet plus @, # and $.
func GenerateShopPassword() (string, error) {
	password := make([]byte, passwordLength)
	alphabetSize := big.NewInt(int64(len(passwordAlphabet)))

	for i := range password {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", errors.Wrap(err, "failed to generate password")
		}
		password[i] = passwordAlphabet[n.Int64()]
	}

	return string(password), nil
}
