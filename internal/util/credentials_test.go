package util

import (
	"regexp"
	"strings"
	"testing"
)

func TestGenerateShopLoginID(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^SHOP-\d{6}$`)
	for range 50 {
		loginID, err := GenerateShopLoginID()
		if err != nil {
			t.Fatalf("GenerateShopLoginID() error = %v", err)
		}
		if !pattern.MatchString(loginID) {
			t.Fatalf("GenerateShopLoginID() = %s, want SHOP- followed by six digits", loginID)
		}
	}
}

func TestGenerateShopPassword(t *testing.T) {
	t.Parallel()

	for range 50 {
		password, err := GenerateShopPassword()
		if err != nil {
			t.Fatalf("GenerateShopPassword() error = %v", err)
		}
		if len(password) != passwordLength {
			t.Fatalf("GenerateShopPassword() length = %d, want %d", len(password), passwordLength)
		}
		for _, r := range password {
			if !strings.ContainsRune(passwordAlphabet, r) {
				t.Fatalf("GenerateShopPassword() = %s contains %q outside the alphabet", password, r)
			}
		}
	}
}
