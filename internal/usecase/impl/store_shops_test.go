package impl

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unibite/internal/domain/entity"
	domainerrors "unibite/internal/domain/errors"
	"unibite/internal/domain/gateway"
	"unibite/internal/usecase"
)

func TestAdminStore_AddShop(t *testing.T) {
	store, gw, _ := newTestStore(t)
	ctx := context.Background()

	out, err := store.AddShop(ctx, usecase.AddShopInput{Name: "Chai Point", Owner: "Priya Sharma"})
	require.NoError(t, err)

	// New shops start pending with the default image and an empty menu.
	assert.Equal(t, entity.ShopPending, out.Shop.Status)
	assert.Equal(t, defaultShopImage, out.Shop.Image)
	assert.Empty(t, out.Shop.Menu)
	assert.False(t, out.Outcome.Degraded)

	// Credentials were generated and stored.
	require.True(t, out.CredentialStored)
	require.NotNil(t, out.Credential)
	assert.Regexp(t, regexp.MustCompile(`^SHOP-\d{6}$`), out.Credential.LoginID)
	assert.Len(t, out.Credential.Password, 10)

	authRows := gw.rows(gateway.CollectionShopAuth)
	require.Len(t, authRows, 1)
	assert.Equal(t, out.Shop.ID.String(), authRows[0]["shop_id"])
	assert.Equal(t, out.Credential.LoginID, authRows[0]["login_id"])

	_, found := findAuditAction(store, "Added new shop: Chai Point")
	assert.True(t, found)
}

func TestAdminStore_AddShopDegradedOnUnknownFields(t *testing.T) {
	store, gw, _ := newTestStore(t)
	// The deployed backend predates the owner/rating/revenue/image columns.
	gw.rejectField(gateway.CollectionShops, "owner")

	out, err := store.AddShop(context.Background(), usecase.AddShopInput{Name: "Chai Point", Owner: "Priya Sharma"})
	require.NoError(t, err)

	assert.True(t, out.Outcome.Degraded)
	assert.Contains(t, out.Outcome.DroppedFields, "owner")

	// The shop exists remotely and locally despite the degraded write.
	require.Len(t, gw.rows(gateway.CollectionShops), 1)
	shops := store.Shops()
	require.Len(t, shops, 1)
	assert.Equal(t, "Chai Point", shops[0].Name)
	assert.Empty(t, shops[0].Menu)
}

func TestAdminStore_AddShopCredentialWriteFailureDegrades(t *testing.T) {
	store, gw, _ := newTestStore(t)
	gw.failWrite[gateway.CollectionShopAuth] = errTransport

	out, err := store.AddShop(context.Background(), usecase.AddShopInput{Name: "Chai Point"})
	require.NoError(t, err, "shop creation must survive a failed credential write")

	assert.False(t, out.CredentialStored)
	require.Len(t, store.Shops(), 1)
	assert.Empty(t, gw.rows(gateway.CollectionShopAuth))
}

func TestAdminStore_EditShop(t *testing.T) {
	store, gw, _ := newTestStore(t)
	_, shopID, _ := seedBasicState(gw)
	require.NoError(t, store.RefreshAll(context.Background()))

	newName := "Burger Palace"
	out, err := store.EditShop(context.Background(), usecase.EditShopInput{ID: shopID, Name: &newName})
	require.NoError(t, err)
	assert.False(t, out.Outcome.Degraded)

	assert.Equal(t, "Burger Palace", store.Shops()[0].Name)
	assert.Equal(t, "Burger Palace", gw.rows(gateway.CollectionShops)[0]["name"])
	// Untouched fields survive the partial update.
	assert.Equal(t, "Bob Smith", store.Shops()[0].Owner)

	_, found := findAuditAction(store, fmt.Sprintf("Updated shop details for ID: %s", shopID))
	assert.True(t, found)
}

func TestAdminStore_EditShopDegradedKeepsRejectedFieldOut(t *testing.T) {
	store, gw, _ := newTestStore(t)
	_, shopID, _ := seedBasicState(gw)
	require.NoError(t, store.RefreshAll(context.Background()))
	// The deployed backend predates the owner column.
	gw.rejectField(gateway.CollectionShops, "owner")

	newName, newOwner := "Burger Palace", "Jane Doe"
	out, err := store.EditShop(context.Background(),
		usecase.EditShopInput{ID: shopID, Name: &newName, Owner: &newOwner})
	require.NoError(t, err)

	assert.True(t, out.Outcome.Degraded)
	assert.Contains(t, out.Outcome.DroppedFields, "owner")

	// The acknowledged field lands everywhere; the rejected one nowhere.
	assert.Equal(t, "Burger Palace", store.Shops()[0].Name)
	assert.Equal(t, "Bob Smith", store.Shops()[0].Owner)
	shopRow := gw.rows(gateway.CollectionShops)[0]
	assert.Equal(t, "Burger Palace", shopRow["name"])
	assert.Equal(t, "Bob Smith", shopRow["owner"])
}

func TestAdminStore_EditShopRequiresFields(t *testing.T) {
	store, gw, _ := newTestStore(t)
	_, shopID, _ := seedBasicState(gw)
	require.NoError(t, store.RefreshAll(context.Background()))

	_, err := store.EditShop(context.Background(), usecase.EditShopInput{ID: shopID})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAdminStore_ToggleShopStatus(t *testing.T) {
	store, gw, _ := newTestStore(t)
	_, shopID, _ := seedBasicState(gw)
	require.NoError(t, store.RefreshAll(context.Background()))

	// approved → disabled
	require.NoError(t, store.ToggleShopStatus(context.Background(), shopID))
	assert.Equal(t, entity.ShopDisabled, store.Shops()[0].Status)

	entry, found := findAuditAction(store, "Shop Burger King disabled")
	require.True(t, found)
	assert.Equal(t, entity.AuditSuccess, entry.Severity)

	// disabled → approved
	require.NoError(t, store.ToggleShopStatus(context.Background(), shopID))
	assert.Equal(t, entity.ShopApproved, store.Shops()[0].Status)

	_, found = findAuditAction(store, "Shop Burger King approved")
	assert.True(t, found)
}

func TestAdminStore_ToggleShopStatusPendingApproves(t *testing.T) {
	store, gw, _ := newTestStore(t)
	shopID := uuid.New()
	gw.seedRow(gateway.CollectionShops, gateway.Row{"id": shopID.String(), "name": "Chai Point", "status": "pending"})
	require.NoError(t, store.RefreshAll(context.Background()))

	require.NoError(t, store.ToggleShopStatus(context.Background(), shopID))
	assert.Equal(t, entity.ShopApproved, store.Shops()[0].Status)
}

func TestAdminStore_DeleteShopRemovesMenu(t *testing.T) {
	store, gw, _ := newTestStore(t)
	_, shopID, _ := seedBasicState(gw)
	require.NoError(t, store.RefreshAll(context.Background()))

	require.NoError(t, store.DeleteShop(context.Background(), shopID))

	assert.Empty(t, store.Shops())
	assert.Empty(t, gw.rows(gateway.CollectionShops))
	assert.Empty(t, gw.rows(gateway.CollectionMenuItems))

	entry, found := findAuditAction(store, fmt.Sprintf("Deleted shop ID: %s", shopID))
	require.True(t, found)
	assert.Equal(t, entity.AuditWarning, entry.Severity)
}
