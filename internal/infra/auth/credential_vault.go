package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"unibite/config"
	"unibite/internal/domain/service"
)

// credentialVault compares submitted operator credentials against the
// configured expected values. The secret may be configured either as a plain
// value or as a bcrypt hash of it; hashes are recognized by their "$2"
// prefix. Comparisons of plain values are constant-time.
type credentialVault struct {
	identifier string
	secret     string
	secondCode string
}

// NewCredentialVault creates the vault from the startup-injected admin
// credentials. Credentials never leave the vault and are never logged.
func NewCredentialVault(cfg *config.Config) (service.CredentialVault, error) {
	if cfg.Admin == nil || cfg.Admin.Identifier == "" || cfg.Admin.Secret == "" {
		return nil, errors.New("admin credentials must be provided")
	}

	return &credentialVault{
		identifier: cfg.Admin.Identifier,
		secret:     cfg.Admin.Secret,
		secondCode: cfg.Admin.SecondCode,
	}, nil
}

// CheckPrimary validates the operator identifier and secret.
func (v *credentialVault) CheckPrimary(identifier, secret string) bool {
	identifierMatch := constantTimeEquals(v.identifier, identifier)

	var secretMatch bool
	if strings.HasPrefix(v.secret, "$2") {
		secretMatch = bcrypt.CompareHashAndPassword([]byte(v.secret), []byte(secret)) == nil
	} else {
		secretMatch = constantTimeEquals(v.secret, secret)
	}

	return identifierMatch && secretMatch
}

// CheckSecondary validates the one-time second-factor code.
func (v *credentialVault) CheckSecondary(code string) bool {
	return constantTimeEquals(v.secondCode, code)
}

func constantTimeEquals(expected, actual string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}
