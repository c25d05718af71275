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

func TestAdminStore_AddDeliveryPartner(t *testing.T) {
	store, gw, _ := newTestStore(t)

	out, err := store.AddDeliveryPartner(context.Background(), usecase.AddDeliveryPartnerInput{
		Name:   "Ravi Kumar",
		Phone:  "9876543210",
		Hostel: "H4",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PartnerActive, out.Partner.Status)
	assert.Equal(t, newPartnerRating, out.Partner.Rating)
	assert.Zero(t, out.Partner.CompletedDeliveries)

	require.Len(t, gw.rows(gateway.CollectionDeliveryProfiles), 1)
	require.Len(t, store.DeliveryPartners(), 1)

	_, found := findAuditAction(store, "Added delivery partner: Ravi Kumar")
	assert.True(t, found)
}

func TestAdminStore_AddDeliveryPartnerRequiresName(t *testing.T) {
	store, gw, _ := newTestStore(t)

	_, err := store.AddDeliveryPartner(context.Background(), usecase.AddDeliveryPartnerInput{Phone: "9876543210"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Empty(t, gw.rows(gateway.CollectionDeliveryProfiles))
}

func TestAdminStore_BlockDeliveryPartner(t *testing.T) {
	store, gw, _ := newTestStore(t)
	partnerID := uuid.New()
	gw.seedRow(gateway.CollectionDeliveryProfiles, gateway.Row{
		"id": partnerID.String(), "name": "Ravi Kumar", "status": "active", "rating": 4.8,
	})
	require.NoError(t, store.RefreshAll(context.Background()))

	require.NoError(t, store.BlockDeliveryPartner(context.Background(), partnerID))

	assert.Equal(t, entity.PartnerBlocked, store.DeliveryPartners()[0].Status)
	assert.Equal(t, "blocked", gw.rows(gateway.CollectionDeliveryProfiles)[0]["status"])

	entry, found := findAuditAction(store, fmt.Sprintf("Blocked delivery partner ID: %s", partnerID))
	require.True(t, found)
	assert.Equal(t, entity.AuditWarning, entry.Severity)
}

func TestAdminStore_RemoveDeliveryPartner(t *testing.T) {
	store, gw, _ := newTestStore(t)
	partnerID := uuid.New()
	gw.seedRow(gateway.CollectionDeliveryProfiles, gateway.Row{
		"id": partnerID.String(), "name": "Ravi Kumar", "status": "active",
	})
	require.NoError(t, store.RefreshAll(context.Background()))

	require.NoError(t, store.RemoveDeliveryPartner(context.Background(), partnerID))

	assert.Empty(t, store.DeliveryPartners())
	assert.Empty(t, gw.rows(gateway.CollectionDeliveryProfiles))

	entry, found := findAuditAction(store, fmt.Sprintf("Removed delivery partner ID: %s", partnerID))
	require.True(t, found)
	assert.Equal(t, entity.AuditWarning, entry.Severity)
}

func TestAdminStore_RemoveUnknownPartner(t *testing.T) {
	store, _, _ := newTestStore(t)

	err := store.RemoveDeliveryPartner(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
