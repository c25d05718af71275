package impl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"unibite/internal/domain/entity"
	domainerrors "unibite/internal/domain/errors"
	"unibite/internal/domain/gateway"
	"unibite/internal/errors"
	"unibite/internal/usecase"
	"unibite/internal/util"
)

const defaultShopImage = "https://images.unsplash.com/photo-1472851294608-415522f96319?w=800&auto=format&fit=crop&q=60"

// AddShop registers a shop and generates its login credentials. The shop
// write is the primary operation; a failed credential write degrades the
// result but the shop still exists.
func (s *adminStore) AddShop(ctx context.Context, input usecase.AddShopInput) (*usecase.AddShopOutput, error) {
	if input.Name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("shop name is required")
	}

	image := input.Image
	if image == "" {
		image = defaultShopImage
	}

	shop := &entity.Shop{
		ID:      uuid.New(),
		Name:    input.Name,
		Owner:   input.Owner,
		Status:  entity.ShopPending,
		Revenue: decimal.Zero,
		Image:   image,
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	accepted, outcome, err := insertWithFallback(ctx, s.gw, gateway.CollectionShops, shopToRow(shop))
	if err != nil {
		return nil, mapGatewayError(err)
	}
	created := shopFromRow(accepted)

	credential, credentialStored := s.issueShopCredential(ctx, created.ID)

	s.mu.Lock()
	s.shops = append([]entity.Shop{created}, s.shops...)
	s.mu.Unlock()

	s.audit.record(ctx, fmt.Sprintf("Added new shop: %s", created.Name), entity.AuditSuccess)

	return &usecase.AddShopOutput{
		Shop:             &created,
		Credential:       credential,
		CredentialStored: credentialStored,
		Outcome:          outcome,
	}, nil
}

// issueShopCredential generates a login pair and stores it in shop_auth. Any
// failure is logged and reported through the stored flag, never as an error;
// the operator can re-issue credentials later.
func (s *adminStore) issueShopCredential(ctx context.Context, shopID uuid.UUID) (*entity.ShopCredential, bool) {
	loginID, err := util.GenerateShopLoginID()
	if err != nil {
		s.logger.Warn("Failed to generate shop login id", slog.Any("error", err))

		return nil, false
	}
	password, err := util.GenerateShopPassword()
	if err != nil {
		s.logger.Warn("Failed to generate shop password", slog.Any("error", err))

		return nil, false
	}

	credential := &entity.ShopCredential{
		ShopID:   shopID,
		LoginID:  loginID,
		Password: password,
	}

	_, err = s.gw.Insert(ctx, gateway.CollectionShopAuth, gateway.Row{
		"shop_id":  credential.ShopID.String(),
		"login_id": credential.LoginID,
		"password": credential.Password,
	})
	if err != nil {
		s.logger.Warn("Failed to store shop credential",
			slog.String("shopID", shopID.String()), slog.Any("error", err))

		return credential, false
	}

	return credential, true
}

// EditShop applies a partial update to a shop's descriptive fields. Fields
// the backend schema rejected are reported through the outcome and never
// merged into the cache; it only ever holds what the gateway acknowledged.
func (s *adminStore) EditShop(ctx context.Context, input usecase.EditShopInput) (*usecase.EditShopOutput, error) {
	patch := gateway.Row{}
	if input.Name != nil {
		patch["name"] = *input.Name
	}
	if input.Owner != nil {
		patch["owner"] = *input.Owner
	}
	if input.Image != nil {
		patch["image"] = *input.Image
	}
	if len(patch) == 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("no shop fields to update")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	filter := gateway.Row{"id": input.ID.String()}
	outcome, err := updateWithFallback(ctx, s.gw, gateway.CollectionShops, filter, patch)
	if err != nil {
		return nil, mapGatewayError(err)
	}

	dropped := make(map[string]bool, len(outcome.DroppedFields))
	for _, field := range outcome.DroppedFields {
		dropped[field] = true
	}

	s.mu.Lock()
	for i := range s.shops {
		if s.shops[i].ID != input.ID {
			continue
		}
		if input.Name != nil && !dropped["name"] {
			s.shops[i].Name = *input.Name
		}
		if input.Owner != nil && !dropped["owner"] {
			s.shops[i].Owner = *input.Owner
		}
		if input.Image != nil && !dropped["image"] {
			s.shops[i].Image = *input.Image
		}

		break
	}
	s.mu.Unlock()

	if outcome.Degraded {
		s.logger.Warn("Shop update stored without rejected fields",
			slog.String("shopID", input.ID.String()), slog.Any("dropped", outcome.DroppedFields))
	}

	s.audit.record(ctx, fmt.Sprintf("Updated shop details for ID: %s", input.ID), entity.AuditSuccess)

	return &usecase.EditShopOutput{Outcome: outcome}, nil
}

// ToggleShopStatus flips a shop between approved and disabled; a pending
// shop toggles straight to approved.
func (s *adminStore) ToggleShopStatus(ctx context.Context, id uuid.UUID) error {
	s.mu.RLock()
	var shop *entity.Shop
	for i := range s.shops {
		if s.shops[i].ID == id {
			found := s.shops[i]
			shop = &found

			break
		}
	}
	s.mu.RUnlock()

	if shop == nil {
		return domainerrors.ErrNotFound.WrapMessage(fmt.Sprintf("shop %s is not in the store", id))
	}
	next := shop.Status.Toggled()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.gw.Update(ctx, gateway.CollectionShops,
		gateway.Row{"id": id.String()}, gateway.Row{"status": string(next)})
	if err != nil {
		return mapGatewayError(err)
	}

	s.mu.Lock()
	for i := range s.shops {
		if s.shops[i].ID == id {
			s.shops[i].Status = next

			break
		}
	}
	s.mu.Unlock()

	s.audit.record(ctx, fmt.Sprintf("Shop %s %s", shop.Name, next), entity.AuditSuccess)

	return nil
}

// DeleteShop removes a shop and its owned menu items.
func (s *adminStore) DeleteShop(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.gw.Delete(ctx, gateway.CollectionShops, gateway.Row{"id": id.String()}); err != nil {
		return mapGatewayError(err)
	}

	// Menu items never exist outside their parent; a missing-rows result
	// here only means the shop had an empty menu.
	err := s.gw.Delete(ctx, gateway.CollectionMenuItems, gateway.Row{"shop_id": id.String()})
	if err != nil && !errors.Is(err, gateway.ErrNotFound) {
		s.logger.Warn("Failed to delete menu items of removed shop",
			slog.String("shopID", id.String()), slog.Any("error", err))
	}

	s.mu.Lock()
	for i := range s.shops {
		if s.shops[i].ID == id {
			s.shops = append(s.shops[:i], s.shops[i+1:]...)

			break
		}
	}
	s.mu.Unlock()

	s.audit.record(ctx, fmt.Sprintf("Deleted shop ID: %s", id), entity.AuditWarning)

	return nil
}
