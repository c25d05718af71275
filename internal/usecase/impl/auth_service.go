package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.uber.org/fx"

	"unibite/config"
	"unibite/internal/domain/entity"
	domainerrors "unibite/internal/domain/errors"
	"unibite/internal/domain/service"
	"unibite/internal/usecase"
)

// authService implements the AuthUsecase interface. It is the multi-stage
// login chain: credentials → second factor → device trust, with a lockout
// counter in front of the first gate and session persistence behind the
// last. One mutex covers the whole machine; operations are short and the
// operator is a single human.
type authService struct {
	vault    service.CredentialVault
	tokens   service.TokenService
	sessions service.SessionStore
	store    usecase.StoreLifecycle
	audit    *AuditLog
	logger   *slog.Logger

	identifier         string
	maxFailedAttempts  int
	lockoutWindow      time.Duration
	requireDeviceTrust bool
	now                func() time.Time

	mu             sync.Mutex
	stage          entity.AuthStage
	loading        bool
	failedAttempts int
	lockedUntil    time.Time
}

// AuthServiceParams holds dependencies for the auth service, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Vault    service.CredentialVault
	Tokens   service.TokenService
	Sessions service.SessionStore
	Store    usecase.StoreLifecycle
	Audit    *AuditLog
	Config   *config.Config
	Logger   *slog.Logger
}

// NewAuthService is the constructor for authService. The machine starts in
// the loading phase; Rehydrate resolves it.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		vault:              params.Vault,
		tokens:             params.Tokens,
		sessions:           params.Sessions,
		store:              params.Store,
		audit:              params.Audit,
		logger:             params.Logger,
		identifier:         params.Config.Admin.Identifier,
		maxFailedAttempts:  params.Config.Auth.MaxFailedAttempts,
		lockoutWindow:      params.Config.Auth.LockoutWindow,
		requireDeviceTrust: params.Config.Auth.RequireDeviceTrust,
		now:                time.Now,
		stage:              entity.StageUnauthenticated,
		loading:            true,
	}
}

// Rehydrate restores the persisted session on process start. A corrupt or
// unreadable flag degrades to unauthenticated rather than failing startup.
func (s *authService) Rehydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	authenticated, err := s.sessions.LoadAuthenticated(ctx)
	if err != nil {
		s.logger.Warn("Failed to load persisted session", slog.Any("error", err))

		return nil
	}
	if !authenticated {
		return nil
	}

	s.stage = entity.StageAuthenticated
	if err := s.store.Activate(ctx); err != nil {
		s.logger.Warn("Store activation after rehydration failed", slog.Any("error", err))
	}
	s.logger.Info("Session rehydrated to authenticated")

	return nil
}

// SubmitCredentials checks the primary credentials. The lockout gate runs
// before the vault is ever consulted.
func (s *authService) SubmitCredentials(ctx context.Context, input usecase.SubmitCredentialsInput) (*usecase.AdvanceOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != entity.StageUnauthenticated {
		return nil, domainerrors.ErrInvalidStage.WrapMessage("credentials already verified")
	}

	if s.failedAttempts >= s.maxFailedAttempts {
		if s.now().Before(s.lockedUntil) {
			return nil, domainerrors.ErrLockedOut.WithDetails("retry after the cool-down window")
		}
		// Cool-down elapsed; the counter resets and the attempt proceeds.
		s.failedAttempts = 0
	}

	if !s.vault.CheckPrimary(input.Identifier, input.Secret) {
		s.failedAttempts++
		if s.failedAttempts >= s.maxFailedAttempts {
			s.lockedUntil = s.now().Add(s.lockoutWindow)
		}
		s.audit.record(ctx, "Failed login attempt", entity.AuditWarning)

		return nil, domainerrors.ErrInvalidCredentials
	}

	s.stage = entity.StageSecondFactorPending

	return &usecase.AdvanceOutput{Stage: s.stage}, nil
}

// SubmitSecondFactor checks the one-time code. Failures here never touch the
// credential counter.
func (s *authService) SubmitSecondFactor(ctx context.Context, code string) (*usecase.AdvanceOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != entity.StageSecondFactorPending {
		return nil, domainerrors.ErrInvalidStage.WrapMessage("second factor is not awaited")
	}

	if !s.vault.CheckSecondary(code) {
		return nil, domainerrors.ErrInvalidCode
	}

	if s.requireDeviceTrust {
		s.stage = entity.StageDevicePending

		return &usecase.AdvanceOutput{Stage: s.stage}, nil
	}

	return s.completeLocked(ctx)
}

// ConfirmDevice resolves the device-trust gate. Declining trust is a forced
// logout, never an error.
func (s *authService) ConfirmDevice(ctx context.Context, trusted bool) (*usecase.AdvanceOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != entity.StageDevicePending {
		return nil, domainerrors.ErrInvalidStage.WrapMessage("device trust is not awaited")
	}

	if !trusted {
		s.logoutLocked(ctx)

		return &usecase.AdvanceOutput{Stage: entity.StageUnauthenticated}, nil
	}

	return s.completeLocked(ctx)
}

// completeLocked finishes the chain: persists the session flag, mints the
// access token, records the login and activates the entity store. Callers
// hold the mutex.
func (s *authService) completeLocked(ctx context.Context) (*usecase.AdvanceOutput, error) {
	token, err := s.tokens.GenerateAccessToken(s.identifier)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage(err.Error())
	}

	if err := s.sessions.StoreAuthenticated(ctx, true); err != nil {
		// The in-process session still works; only restart persistence is lost.
		s.logger.Warn("Failed to persist session flag", slog.Any("error", err))
	}

	s.stage = entity.StageAuthenticated
	s.audit.record(ctx, "Admin login successful", entity.AuditSuccess)

	if err := s.store.Activate(ctx); err != nil {
		s.logger.Warn("Store activation after login failed", slog.Any("error", err))
	}

	return &usecase.AdvanceOutput{Stage: s.stage, AccessToken: token}, nil
}

// Logout resets the chain from any stage.
func (s *authService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logoutLocked(ctx)

	return nil
}

// logoutLocked clears all session state. Callers hold the mutex.
func (s *authService) logoutLocked(ctx context.Context) {
	if err := s.sessions.ClearAuthenticated(ctx); err != nil {
		s.logger.Warn("Failed to clear persisted session flag", slog.Any("error", err))
	}

	s.stage = entity.StageUnauthenticated
	s.failedAttempts = 0
	s.lockedUntil = time.Time{}
	s.store.Deactivate(ctx)
}

// Session reports the current snapshot of the machine.
func (s *authService) Session() usecase.SessionOutput {
	s.mu.Lock()
	defer s.mu.Unlock()

	return usecase.SessionOutput{
		Stage:          s.stage,
		Loading:        s.loading,
		FailedAttempts: s.failedAttempts,
	}
}
