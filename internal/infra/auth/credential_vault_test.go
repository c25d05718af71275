package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"unibite/config"
)

func vaultConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.Admin = &config.AdminConfig{
		Identifier: "admin123",
		Secret:     secret,
		SecondCode: "123456",
	}

	return cfg
}

func TestCredentialVault_PlainSecret(t *testing.T) {
	vault, err := NewCredentialVault(vaultConfig("123"))
	require.NoError(t, err)

	assert.True(t, vault.CheckPrimary("admin123", "123"))
	assert.False(t, vault.CheckPrimary("admin123", "wrong"))
	assert.False(t, vault.CheckPrimary("someone", "123"))
	assert.False(t, vault.CheckPrimary("", ""))
}

func TestCredentialVault_BcryptSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("123"), bcrypt.MinCost)
	require.NoError(t, err)

	vault, err := NewCredentialVault(vaultConfig(string(hash)))
	require.NoError(t, err)

	assert.True(t, vault.CheckPrimary("admin123", "123"))
	assert.False(t, vault.CheckPrimary("admin123", "124"))
}

func TestCredentialVault_SecondFactor(t *testing.T) {
	vault, err := NewCredentialVault(vaultConfig("123"))
	require.NoError(t, err)

	assert.True(t, vault.CheckSecondary("123456"))
	assert.False(t, vault.CheckSecondary("000000"))
	assert.False(t, vault.CheckSecondary(""))
}

func TestCredentialVault_RequiresConfig(t *testing.T) {
	_, err := NewCredentialVault(&config.Config{})
	assert.Error(t, err)

	cfg := vaultConfig("")
	_, err = NewCredentialVault(cfg)
	assert.Error(t, err)
}
