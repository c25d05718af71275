package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unibite/internal/domain/entity"
	domainerrors "unibite/internal/domain/errors"
	"unibite/internal/usecase"
)

type fakeVault struct {
	identifier string
	secret     string
	secondCode string
}

func (f *fakeVault) CheckPrimary(identifier, secret string) bool {
	return identifier == f.identifier && secret == f.secret
}

func (f *fakeVault) CheckSecondary(code string) bool {
	return code == f.secondCode
}

type fakeTokens struct {
	generateErr error
}

func (f *fakeTokens) GenerateAccessToken(subject string) (string, error) {
	if f.generateErr != nil {
		return "", f.generateErr
	}

	return "token-for-" + subject, nil
}

func (f *fakeTokens) ValidateAccessToken(token string) (string, error) {
	return "", domainerrors.ErrInvalidCredentials
}

func (f *fakeTokens) AccessTokenDuration() time.Duration { return 15 * time.Minute }

// fakeLifecycle records activation state transitions.
type fakeLifecycle struct {
	mu          sync.Mutex
	active      bool
	activations int
}

func (f *fakeLifecycle) Activate(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = true
	f.activations++

	return nil
}

func (f *fakeLifecycle) Deactivate(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = false
}

func (f *fakeLifecycle) isActive() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.active
}

type authFixture struct {
	auth     *authService
	sessions *fakeSessionStore
	store    *fakeLifecycle
	audit    *AuditLog
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	cfg := testConfig()
	sessions := &fakeSessionStore{}
	store := &fakeLifecycle{}
	logger := testLogger()
	audit := NewAuditLog(AuditLogParams{Sessions: sessions, Logger: logger})

	auth := NewAuthService(AuthServiceParams{
		Vault:    &fakeVault{identifier: "admin123", secret: "123", secondCode: "123456"},
		Tokens:   &fakeTokens{},
		Sessions: sessions,
		Store:    store,
		Audit:    audit,
		Config:   cfg,
		Logger:   logger,
	}).(*authService)

	return &authFixture{auth: auth, sessions: sessions, store: store, audit: audit}
}

func (fx *authFixture) loginToDevicePending(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	out, err := fx.auth.SubmitCredentials(ctx, usecase.SubmitCredentialsInput{Identifier: "admin123", Secret: "123"})
	require.NoError(t, err)
	require.Equal(t, entity.StageSecondFactorPending, out.Stage)

	out, err = fx.auth.SubmitSecondFactor(ctx, "123456")
	require.NoError(t, err)
	require.Equal(t, entity.StageDevicePending, out.Stage)
}

func TestAuthService_FullLoginChain(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()
	fx.loginToDevicePending(t)

	out, err := fx.auth.ConfirmDevice(ctx, true)
	require.NoError(t, err)

	assert.Equal(t, entity.StageAuthenticated, out.Stage)
	assert.Equal(t, "token-for-admin123", out.AccessToken)
	assert.True(t, fx.store.isActive())

	set, value := fx.sessions.persistedFlag()
	assert.True(t, set)
	assert.True(t, value)

	session := fx.auth.Session()
	assert.Equal(t, entity.StageAuthenticated, session.Stage)
	assert.False(t, session.Loading, "loading only covers rehydration")

	var loginAudited bool
	for _, entry := range fx.audit.snapshot() {
		if entry.Action == "Admin login successful" {
			loginAudited = true
			assert.Equal(t, entity.AuditSuccess, entry.Severity)
		}
	}
	assert.True(t, loginAudited)
}

func TestAuthService_WrongSecretCountsAttempts(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, err := fx.auth.SubmitCredentials(ctx, usecase.SubmitCredentialsInput{Identifier: "admin123", Secret: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Equal(t, 1, fx.auth.Session().FailedAttempts)

	var warned bool
	for _, entry := range fx.audit.snapshot() {
		if entry.Action == "Failed login attempt" && entry.Severity == entity.AuditWarning {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestAuthService_LockoutAfterMaxAttempts(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()
	bad := usecase.SubmitCredentialsInput{Identifier: "admin123", Secret: "wrong"}

	for i := 0; i < 3; i++ {
		_, err := fx.auth.SubmitCredentials(ctx, bad)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	}

	// The fourth attempt is rejected before the vault is consulted, even
	// with the right secret.
	_, err := fx.auth.SubmitCredentials(ctx, usecase.SubmitCredentialsInput{Identifier: "admin123", Secret: "123"})
	assert.ErrorIs(t, err, domainerrors.ErrLockedOut)
	assert.Equal(t, entity.StageUnauthenticated, fx.auth.Session().Stage)
}

func TestAuthService_LockoutExpiresAfterWindow(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	current := time.Now()
	fx.auth.now = func() time.Time { return current }

	bad := usecase.SubmitCredentialsInput{Identifier: "admin123", Secret: "wrong"}
	for i := 0; i < 3; i++ {
		_, err := fx.auth.SubmitCredentials(ctx, bad)
		require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	}

	_, err := fx.auth.SubmitCredentials(ctx, bad)
	require.ErrorIs(t, err, domainerrors.ErrLockedOut)

	// Past the window the counter resets and attempts proceed again.
	current = current.Add(31 * time.Second)

	out, err := fx.auth.SubmitCredentials(ctx, usecase.SubmitCredentialsInput{Identifier: "admin123", Secret: "123"})
	require.NoError(t, err)
	assert.Equal(t, entity.StageSecondFactorPending, out.Stage)
}

func TestAuthService_SecondFactorFailureKeepsStage(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, err := fx.auth.SubmitCredentials(ctx, usecase.SubmitCredentialsInput{Identifier: "admin123", Secret: "wrong"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = fx.auth.SubmitCredentials(ctx, usecase.SubmitCredentialsInput{Identifier: "admin123", Secret: "123"})
	require.NoError(t, err)

	_, err = fx.auth.SubmitSecondFactor(ctx, "000000")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCode)

	// The stage does not regress and the credential counter is untouched.
	session := fx.auth.Session()
	assert.Equal(t, entity.StageSecondFactorPending, session.Stage)
	assert.Equal(t, 1, session.FailedAttempts, "counter still carries the credential pass")
}

func TestAuthService_DeclinedDeviceTrustForcesLogout(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()
	fx.loginToDevicePending(t)

	out, err := fx.auth.ConfirmDevice(ctx, false)
	require.NoError(t, err, "declining trust is an outcome, not an error")

	assert.Equal(t, entity.StageUnauthenticated, out.Stage)
	assert.Empty(t, out.AccessToken)
	assert.False(t, fx.store.isActive())

	set, _ := fx.sessions.persistedFlag()
	assert.False(t, set)
	assert.Zero(t, fx.auth.Session().FailedAttempts)
}

func TestAuthService_StageOrderEnforced(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, err := fx.auth.SubmitSecondFactor(ctx, "123456")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStage)

	_, err = fx.auth.ConfirmDevice(ctx, true)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStage)

	_, err = fx.auth.SubmitCredentials(ctx, usecase.SubmitCredentialsInput{Identifier: "admin123", Secret: "123"})
	require.NoError(t, err)

	// Credentials cannot be re-submitted mid-chain.
	_, err = fx.auth.SubmitCredentials(ctx, usecase.SubmitCredentialsInput{Identifier: "admin123", Secret: "123"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStage)
}

func TestAuthService_RehydrateAuthenticatedSession(t *testing.T) {
	fx := newAuthFixture(t)
	require.NoError(t, fx.sessions.StoreAuthenticated(context.Background(), true))

	require.NoError(t, fx.auth.Rehydrate(context.Background()))

	session := fx.auth.Session()
	assert.Equal(t, entity.StageAuthenticated, session.Stage)
	assert.False(t, session.Loading)
	assert.True(t, fx.store.isActive())
}

func TestAuthService_RehydrateLoadFailureDegrades(t *testing.T) {
	fx := newAuthFixture(t)
	fx.sessions.failLoad = errTransport

	require.NoError(t, fx.auth.Rehydrate(context.Background()), "a broken session store must not fail startup")

	session := fx.auth.Session()
	assert.Equal(t, entity.StageUnauthenticated, session.Stage)
	assert.False(t, session.Loading)
	assert.False(t, fx.store.isActive())
}

func TestAuthService_RehydrateWithoutFlagStaysUnauthenticated(t *testing.T) {
	fx := newAuthFixture(t)

	require.NoError(t, fx.auth.Rehydrate(context.Background()))

	assert.Equal(t, entity.StageUnauthenticated, fx.auth.Session().Stage)
	assert.False(t, fx.store.isActive())
}

func TestAuthService_LogoutResetsEverything(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()
	fx.loginToDevicePending(t)
	_, err := fx.auth.ConfirmDevice(ctx, true)
	require.NoError(t, err)

	require.NoError(t, fx.auth.Logout(ctx))

	session := fx.auth.Session()
	assert.Equal(t, entity.StageUnauthenticated, session.Stage)
	assert.Zero(t, session.FailedAttempts)
	assert.False(t, fx.store.isActive())

	set, _ := fx.sessions.persistedFlag()
	assert.False(t, set)

	// A fresh login works after logout.
	out, err := fx.auth.SubmitCredentials(ctx, usecase.SubmitCredentialsInput{Identifier: "admin123", Secret: "123"})
	require.NoError(t, err)
	assert.Equal(t, entity.StageSecondFactorPending, out.Stage)
}

func TestAuthService_TokenFailureAbortsCompletion(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()
	fx.auth.tokens = &fakeTokens{generateErr: errTransport}
	fx.loginToDevicePending(t)

	_, err := fx.auth.ConfirmDevice(ctx, true)
	require.ErrorIs(t, err, domainerrors.ErrInternalError)

	// The machine stays on the device gate and nothing was persisted.
	assert.Equal(t, entity.StageDevicePending, fx.auth.Session().Stage)
	set, _ := fx.sessions.persistedFlag()
	assert.False(t, set)
	assert.False(t, fx.store.isActive())
}
