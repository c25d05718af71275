// Package service defines the interfaces for domain services whose concrete
// implementations live in the infrastructure layer.
package service

// CredentialVault validates the operator's static credentials against
// configuration-supplied expected values. Both checks are pure comparisons
// with no side effects; they always return a verdict, never an error.
type CredentialVault interface {
	// CheckPrimary validates the operator identifier and secret.
	CheckPrimary(identifier, secret string) bool

	// CheckSecondary validates the one-time second-factor code.
	CheckSecondary(code string) bool
}
