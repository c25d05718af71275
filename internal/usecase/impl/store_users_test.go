package impl

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unibite/internal/domain/entity"
	domainerrors "unibite/internal/domain/errors"
	"unibite/internal/domain/gateway"
	"unibite/internal/usecase"
)

func TestAdminStore_AddUser(t *testing.T) {
	store, gw, _ := newTestStore(t)
	ctx := context.Background()

	out, err := store.AddUser(ctx, usecase.AddUserInput{
		Name:  "Eva Green",
		Email: "eva@campus.edu",
		Role:  entity.RoleStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.UserActive, out.User.Status)
	assert.False(t, out.Outcome.Degraded)

	// The remote row exists and the cache mirrors it.
	assert.Len(t, gw.rows(gateway.CollectionUsers), 1)
	require.Len(t, store.Users(), 1)
	assert.Equal(t, "Eva Green", store.Users()[0].Name)

	_, found := findAuditAction(store, "Added new user: Eva Green")
	assert.True(t, found)
}

func TestAdminStore_AddUserValidation(t *testing.T) {
	store, gw, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddUser(ctx, usecase.AddUserInput{Email: "x@campus.edu", Role: entity.RoleStudent})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = store.AddUser(ctx, usecase.AddUserInput{Name: "X", Email: "x@campus.edu", Role: "ghost"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	// Nothing was written and nothing was audited.
	assert.Empty(t, gw.rows(gateway.CollectionUsers))
	assert.Empty(t, store.SystemLogs())
}

func TestAdminStore_BlockUnblockLastWriteWins(t *testing.T) {
	store, gw, _ := newTestStore(t)
	userID, _, _ := seedBasicState(gw)
	require.NoError(t, store.RefreshAll(context.Background()))

	ctx := context.Background()
	require.NoError(t, store.BlockUser(ctx, userID))
	require.NoError(t, store.UnblockUser(ctx, userID))

	// Both writes succeeded remotely; the state reflects the later one.
	require.Len(t, store.Users(), 1)
	assert.Equal(t, entity.UserActive, store.Users()[0].Status)
	assert.Equal(t, "active", gw.rows(gateway.CollectionUsers)[0]["status"])

	blockEntry, found := findAuditAction(store, fmt.Sprintf("Blocked user ID: %s", userID))
	require.True(t, found)
	assert.Equal(t, entity.AuditWarning, blockEntry.Severity)

	unblockEntry, found := findAuditAction(store, fmt.Sprintf("Unblocked user ID: %s", userID))
	require.True(t, found)
	assert.Equal(t, entity.AuditSuccess, unblockEntry.Severity)
}

func TestAdminStore_BlockUserRemoteFailureLeavesStateUntouched(t *testing.T) {
	store, gw, _ := newTestStore(t)
	userID, _, _ := seedBasicState(gw)
	require.NoError(t, store.RefreshAll(context.Background()))

	gw.failWrite[gateway.CollectionUsers] = errTransport

	err := store.BlockUser(context.Background(), userID)
	require.Error(t, err)

	assert.Equal(t, entity.UserActive, store.Users()[0].Status)
	_, found := findAuditAction(store, fmt.Sprintf("Blocked user ID: %s", userID))
	assert.False(t, found, "failed mutations are not audited")
}

func TestAdminStore_BlockUnknownUser(t *testing.T) {
	store, gw, _ := newTestStore(t)
	seedBasicState(gw)
	require.NoError(t, store.RefreshAll(context.Background()))

	err := store.BlockUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAdminStore_DeleteUser(t *testing.T) {
	store, gw, _ := newTestStore(t)
	userID, _, _ := seedBasicState(gw)
	require.NoError(t, store.RefreshAll(context.Background()))

	require.NoError(t, store.DeleteUser(context.Background(), userID))

	assert.Empty(t, store.Users())
	assert.Empty(t, gw.rows(gateway.CollectionUsers))

	entry, found := findAuditAction(store, fmt.Sprintf("Deleted user ID: %s", userID))
	require.True(t, found)
	assert.Equal(t, entity.AuditWarning, entry.Severity)
}
