// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"unibite/internal/domain/entity"
)

// --- Input DTOs ---

// SubmitCredentialsInput defines the data for the first authentication gate.
type SubmitCredentialsInput struct {
	Identifier string
	Secret     string
}

// --- Output DTOs ---

// AdvanceOutput reports the stage reached after passing an authentication
// gate. AccessToken is set only when the chain completed and the operator is
// fully authenticated.
type AdvanceOutput struct {
	Stage       entity.AuthStage
	AccessToken string
}

// SessionOutput is the current authentication snapshot, used by rehydration
// probes and the session endpoint.
type SessionOutput struct {
	Stage          entity.AuthStage
	Loading        bool
	FailedAttempts int
}

// AuthUsecase drives the operator login chain:
// unauthenticated → 2fa_pending → device_pending → authenticated.
// Implementations are safe for concurrent use.
type AuthUsecase interface {
	// Rehydrate restores the persisted session on process start. A persisted
	// authenticated flag jumps the chain straight to authenticated and
	// activates the entity store.
	Rehydrate(ctx context.Context) error

	// SubmitCredentials checks the primary credentials. On success the chain
	// parks in 2fa_pending; on failure the attempt counter increments and
	// reaching the threshold locks the operator out for the cool-down window.
	SubmitCredentials(ctx context.Context, input SubmitCredentialsInput) (*AdvanceOutput, error)

	// SubmitSecondFactor checks the one-time code. Valid only in 2fa_pending.
	// When device trust is not required the chain completes here.
	SubmitSecondFactor(ctx context.Context, code string) (*AdvanceOutput, error)

	// ConfirmDevice resolves the device-trust gate. Trusting completes the
	// chain; declining forces a full logout.
	ConfirmDevice(ctx context.Context, trusted bool) (*AdvanceOutput, error)

	// Logout resets the chain from any stage, clears the persisted flag and
	// deactivates the entity store.
	Logout(ctx context.Context) error

	// Session reports the current stage, the rehydration loading flag and
	// the failed-attempt count.
	Session() SessionOutput
}
