package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unibite/config"
)

func jwtConfig(access string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = access

	return cfg
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	jwtService, err := NewJWTService(jwtConfig("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	token, err := jwtService.GenerateAccessToken("admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := jwtService.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin123", subject)

	assert.Positive(t, jwtService.AccessTokenDuration())
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	jwtService, err := NewJWTService(jwtConfig("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	token, err := jwtService.GenerateAccessToken("admin123")
	require.NoError(t, err)

	_, err = jwtService.ValidateAccessToken(token + "x")
	assert.Error(t, err)

	_, err = jwtService.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	minter, err := NewJWTService(jwtConfig("secret-one-that-is-long-enough"))
	require.NoError(t, err)
	verifier, err := NewJWTService(jwtConfig("secret-two-that-is-long-enough"))
	require.NoError(t, err)

	token, err := minter.GenerateAccessToken("admin123")
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(jwtConfig(""))
	assert.Error(t, err)
}
