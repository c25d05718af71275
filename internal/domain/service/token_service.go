package service

import "time"

// TokenService mints and validates the API access token handed to the
// dashboard once the authentication chain completes.
type TokenService interface {
	// GenerateAccessToken creates a signed token for the given subject.
	GenerateAccessToken(subject string) (string, error)

	// ValidateAccessToken checks a token and returns its subject.
	ValidateAccessToken(token string) (string, error)

	// AccessTokenDuration returns the configured token lifetime.
	AccessTokenDuration() time.Duration
}
