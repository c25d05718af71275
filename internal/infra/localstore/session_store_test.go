package localstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unibite/internal/domain/entity"
)

func newTestSessionStore(t *testing.T) *sessionStore {
	t.Helper()

	snapshot, err := NewSnapshot(filepath.Join(t.TempDir(), "snapshot.json"))
	require.NoError(t, err)

	return &sessionStore{snapshot: snapshot}
}

func TestSessionStore_AuthenticatedFlagLifecycle(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	authenticated, err := store.LoadAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, authenticated)

	require.NoError(t, store.StoreAuthenticated(ctx, true))
	authenticated, err = store.LoadAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, authenticated)

	require.NoError(t, store.ClearAuthenticated(ctx))
	authenticated, err = store.LoadAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, authenticated)
}

func TestSessionStore_AuditLogRoundTrip(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	entries, err := store.LoadAuditLog(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	stored := []entity.AuditEntry{
		{
			ID:          uuid.New(),
			Action:      "Blocked user Alice Johnson",
			PerformedBy: "Admin",
			Date:        time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
			Severity:    entity.AuditWarning,
		},
		{
			ID:          uuid.New(),
			Action:      "Approved shop Burger King",
			PerformedBy: "Admin",
			Date:        time.Date(2024, 5, 31, 9, 30, 0, 0, time.UTC),
			Severity:    entity.AuditSuccess,
		},
	}
	require.NoError(t, store.StoreAuditLog(ctx, stored))

	loaded, err := store.LoadAuditLog(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, loaded)
}
