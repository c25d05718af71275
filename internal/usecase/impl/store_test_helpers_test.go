package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"unibite/config"
	"unibite/internal/domain/entity"
	"unibite/internal/domain/gateway"
	"unibite/internal/errors"
	"unibite/internal/usecase"
)

// fakeGateway is an in-memory gateway with per-collection failure injection
// and unknown-field simulation, standing in for both deployment profiles.
type fakeGateway struct {
	mu          sync.Mutex
	collections map[string][]gateway.Row

	// rejectFields simulates a backend schema missing certain columns:
	// writes carrying one of these fields bounce with UnknownFieldError.
	rejectFields map[string]map[string]bool

	// failSelect / failWrite force transport failures per collection.
	failSelect map[string]error
	failWrite  map[string]error

	handler    gateway.ChangeHandler
	subscribed bool

	insertCalls int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		collections:  make(map[string][]gateway.Row),
		rejectFields: make(map[string]map[string]bool),
		failSelect:   make(map[string]error),
		failWrite:    make(map[string]error),
	}
}

func (f *fakeGateway) rejectField(collection, field string) {
	if f.rejectFields[collection] == nil {
		f.rejectFields[collection] = make(map[string]bool)
	}
	f.rejectFields[collection][field] = true
}

func (f *fakeGateway) seedRow(collection string, row gateway.Row) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collections[collection] = append(f.collections[collection], row)
}

func (f *fakeGateway) rows(collection string) []gateway.Row {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]gateway.Row, len(f.collections[collection]))
	copy(out, f.collections[collection])

	return out
}

func (f *fakeGateway) unknownField(collection string, row gateway.Row) error {
	for field := range f.rejectFields[collection] {
		if _, present := row[field]; present {
			return &gateway.UnknownFieldError{Collection: collection, Field: field}
		}
	}

	return nil
}

func fakeMatches(row, filter gateway.Row) bool {
	for field, want := range filter {
		if fmt.Sprint(row[field]) != fmt.Sprint(want) {
			return false
		}
	}

	return true
}

func (f *fakeGateway) Select(_ context.Context, collection string, query gateway.Query) ([]gateway.Row, error) {
	if err := f.failSelect[collection]; err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var out []gateway.Row
	for _, row := range f.collections[collection] {
		if query.Filter == nil || fakeMatches(row, query.Filter) {
			out = append(out, row)
		}
	}

	return out, nil
}

func (f *fakeGateway) Insert(_ context.Context, collection string, row gateway.Row) (gateway.Row, error) {
	f.mu.Lock()
	f.insertCalls++
	f.mu.Unlock()

	if err := f.failWrite[collection]; err != nil {
		return nil, err
	}
	if err := f.unknownField(collection, row); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.collections[collection] = append(f.collections[collection], row)
	f.mu.Unlock()

	return row, nil
}

func (f *fakeGateway) Update(_ context.Context, collection string, filter, patch gateway.Row) error {
	if err := f.failWrite[collection]; err != nil {
		return err
	}
	if err := f.unknownField(collection, patch); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	matched := false
	for _, row := range f.collections[collection] {
		if fakeMatches(row, filter) {
			matched = true
			for field, value := range patch {
				row[field] = value
			}
		}
	}
	if !matched {
		return gateway.ErrNotFound
	}

	return nil
}

func (f *fakeGateway) Delete(_ context.Context, collection string, filter gateway.Row) error {
	if err := f.failWrite[collection]; err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var remaining []gateway.Row
	for _, row := range f.collections[collection] {
		if !fakeMatches(row, filter) {
			remaining = append(remaining, row)
		}
	}
	if len(remaining) == len(f.collections[collection]) {
		return gateway.ErrNotFound
	}
	f.collections[collection] = remaining

	return nil
}

func (f *fakeGateway) Subscribe(_ context.Context, handler gateway.ChangeHandler) (func(), error) {
	f.mu.Lock()
	f.handler = handler
	f.subscribed = true
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		f.subscribed = false
		f.mu.Unlock()
	}, nil
}

// signal delivers a change-feed notification synchronously.
func (f *fakeGateway) signal(collection string) {
	f.mu.Lock()
	handler := f.handler
	f.mu.Unlock()
	if handler != nil {
		handler(collection)
	}
}

// fakeSessionStore is an in-memory SessionStore.
type fakeSessionStore struct {
	mu            sync.Mutex
	authenticated bool
	hasFlag       bool
	auditEntries  []entity.AuditEntry

	failLoad error
}

func (f *fakeSessionStore) LoadAuthenticated(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLoad != nil {
		return false, f.failLoad
	}

	return f.hasFlag && f.authenticated, nil
}

func (f *fakeSessionStore) StoreAuthenticated(_ context.Context, authenticated bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authenticated = authenticated
	f.hasFlag = true

	return nil
}

func (f *fakeSessionStore) ClearAuthenticated(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authenticated = false
	f.hasFlag = false

	return nil
}

func (f *fakeSessionStore) LoadAuditLog(context.Context) ([]entity.AuditEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]entity.AuditEntry, len(f.auditEntries))
	copy(out, f.auditEntries)

	return out, nil
}

func (f *fakeSessionStore) StoreAuditLog(_ context.Context, entries []entity.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auditEntries = entries

	return nil
}

func (f *fakeSessionStore) persistedFlag() (set, value bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.hasFlag, f.authenticated
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Gateway.Timeout = 5 * time.Second
	cfg.Admin = &config.AdminConfig{Identifier: "admin123", Secret: "123", SecondCode: "123456"}
	cfg.Auth = &config.AuthConfig{
		MaxFailedAttempts:  3,
		LockoutWindow:      30 * time.Second,
		RequireDeviceTrust: true,
	}

	return cfg
}

// newTestStore builds an adminStore over a fresh fake gateway.
func newTestStore(t *testing.T) (*adminStore, *fakeGateway, *fakeSessionStore) {
	t.Helper()

	gw := newFakeGateway()
	sessions := &fakeSessionStore{}
	logger := testLogger()
	audit := NewAuditLog(AuditLogParams{Sessions: sessions, Logger: logger})

	store := NewAdminStore(AdminStoreParams{
		Gateway: gw,
		Audit:   audit,
		Config:  testConfig(),
		Logger:  logger,
	}).(*adminStore)

	return store, gw, sessions
}

// activateTestStore activates the store and fails the test on error.
func activateTestStore(t *testing.T, store *adminStore) {
	t.Helper()
	require.NoError(t, store.Activate(context.Background()))
}

// findAuditAction reports whether the log holds an entry with the exact
// action text.
func findAuditAction(store *adminStore, action string) (entity.AuditEntry, bool) {
	for _, entry := range store.SystemLogs() {
		if entry.Action == action {
			return entry, true
		}
	}

	return entity.AuditEntry{}, false
}

var errTransport = errors.New("connection reset by backend")

var _ gateway.Gateway = (*fakeGateway)(nil)

var _ usecase.StoreUsecase = (*adminStore)(nil)
