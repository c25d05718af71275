package impl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"unibite/internal/domain/entity"
	domainerrors "unibite/internal/domain/errors"
	"unibite/internal/domain/gateway"
	"unibite/internal/errors"
	"unibite/internal/usecase"
)

// AddMenuItem adds an item to a shop's menu. Availability always starts true
// regardless of the input.
func (s *adminStore) AddMenuItem(ctx context.Context, input usecase.AddMenuItemInput) (*usecase.AddMenuItemOutput, error) {
	if input.Name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("menu item name is required")
	}
	if input.Price.IsNegative() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("menu item price must not be negative")
	}
	if !s.shopExists(input.ShopID) {
		return nil, domainerrors.ErrNotFound.WrapMessage(fmt.Sprintf("shop %s is not in the store", input.ShopID))
	}

	item := &entity.MenuItem{
		ID:        uuid.New(),
		ShopID:    input.ShopID,
		Name:      input.Name,
		Price:     input.Price,
		Category:  input.Category,
		Available: true,
		Image:     input.Image,
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	accepted, outcome, err := insertWithFallback(ctx, s.gw, gateway.CollectionMenuItems, menuItemToRow(item))
	if err != nil {
		return nil, mapGatewayError(err)
	}

	created := menuItemFromRow(accepted)
	s.mu.Lock()
	for i := range s.shops {
		if s.shops[i].ID == input.ShopID {
			s.shops[i].Menu = append(s.shops[i].Menu, created)

			break
		}
	}
	s.mu.Unlock()

	s.audit.record(ctx, fmt.Sprintf("Added menu item to shop ID: %s", input.ShopID), entity.AuditSuccess)

	return &usecase.AddMenuItemOutput{Item: &created, Outcome: outcome}, nil
}

// ToggleMenuItemAvailability flips whether an item can currently be ordered.
func (s *adminStore) ToggleMenuItemAvailability(ctx context.Context, shopID, itemID uuid.UUID) error {
	s.mu.RLock()
	var current *entity.MenuItem
	for i := range s.shops {
		if s.shops[i].ID != shopID {
			continue
		}
		for j := range s.shops[i].Menu {
			if s.shops[i].Menu[j].ID == itemID {
				found := s.shops[i].Menu[j]
				current = &found

				break
			}
		}

		break
	}
	s.mu.RUnlock()

	if current == nil {
		return domainerrors.ErrNotFound.WrapMessage(fmt.Sprintf("menu item %s is not in the store", itemID))
	}
	next := !current.Available

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.gw.Update(ctx, gateway.CollectionMenuItems,
		gateway.Row{"id": itemID.String()}, gateway.Row{"available": next})
	if err != nil {
		return mapGatewayError(err)
	}

	s.mu.Lock()
	for i := range s.shops {
		if s.shops[i].ID != shopID {
			continue
		}
		for j := range s.shops[i].Menu {
			if s.shops[i].Menu[j].ID == itemID {
				s.shops[i].Menu[j].Available = next

				break
			}
		}

		break
	}
	s.mu.Unlock()

	return nil
}

// DeleteMenuItem removes an item from a shop's menu.
func (s *adminStore) DeleteMenuItem(ctx context.Context, shopID, itemID uuid.UUID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.gw.Delete(ctx, gateway.CollectionMenuItems, gateway.Row{"id": itemID.String()})
	if err != nil {
		return mapGatewayError(err)
	}

	s.mu.Lock()
	for i := range s.shops {
		if s.shops[i].ID != shopID {
			continue
		}
		menu := s.shops[i].Menu
		for j := range menu {
			if menu[j].ID == itemID {
				s.shops[i].Menu = append(menu[:j], menu[j+1:]...)

				break
			}
		}

		break
	}
	s.mu.Unlock()

	return nil
}

// UpdateShopMenu replaces a shop's menu wholesale: existing items are
// deleted and the given items inserted fresh.
func (s *adminStore) UpdateShopMenu(ctx context.Context, shopID uuid.UUID, items []usecase.MenuItemInput) error {
	if !s.shopExists(shopID) {
		return domainerrors.ErrNotFound.WrapMessage(fmt.Sprintf("shop %s is not in the store", shopID))
	}
	for _, item := range items {
		if item.Name == "" {
			return domainerrors.ErrValidationFailed.WrapMessage("menu item name is required")
		}
		if item.Price.IsNegative() {
			return domainerrors.ErrValidationFailed.WrapMessage("menu item price must not be negative")
		}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.gw.Delete(ctx, gateway.CollectionMenuItems, gateway.Row{"shop_id": shopID.String()})
	if err != nil && !errors.Is(err, gateway.ErrNotFound) {
		return mapGatewayError(err)
	}

	replaced := make([]entity.MenuItem, 0, len(items))
	for _, input := range items {
		item := &entity.MenuItem{
			ID:        uuid.New(),
			ShopID:    shopID,
			Name:      input.Name,
			Price:     input.Price,
			Category:  input.Category,
			Available: input.Available,
			Image:     input.Image,
		}

		accepted, outcome, err := insertWithFallback(ctx, s.gw, gateway.CollectionMenuItems, menuItemToRow(item))
		if err != nil {
			return mapGatewayError(err)
		}
		if outcome.Degraded {
			s.logger.Warn("Menu item stored without optional fields",
				slog.String("shopID", shopID.String()), slog.Any("dropped", outcome.DroppedFields))
		}
		replaced = append(replaced, menuItemFromRow(accepted))
	}

	s.mu.Lock()
	for i := range s.shops {
		if s.shops[i].ID == shopID {
			s.shops[i].Menu = replaced

			break
		}
	}
	s.mu.Unlock()

	return nil
}

func (s *adminStore) shopExists(id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.shops {
		if s.shops[i].ID == id {
			return true
		}
	}

	return false
}
