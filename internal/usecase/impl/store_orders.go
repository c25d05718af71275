package impl

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"unibite/internal/domain/entity"
	domainerrors "unibite/internal/domain/errors"
	"unibite/internal/domain/gateway"
)

// UpdateOrderStatus transitions an order to the given status. Terminal
// orders never transition; the full lifecycle legality beyond that is the
// caller's concern.
func (s *adminStore) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	if !status.IsValid() {
		return domainerrors.ErrValidationFailed.WrapMessage(fmt.Sprintf("unknown order status %q", status))
	}

	s.mu.RLock()
	var current *entity.Order
	for i := range s.orders {
		if s.orders[i].ID == id {
			found := s.orders[i]
			current = &found

			break
		}
	}
	s.mu.RUnlock()

	if current == nil {
		return domainerrors.ErrNotFound.WrapMessage(fmt.Sprintf("order %s is not in the store", id))
	}
	if current.Status.IsTerminal() {
		return domainerrors.ErrInvalidTransition.WrapMessage(
			fmt.Sprintf("order %s is already %s", id, current.Status))
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.gw.Update(ctx, gateway.CollectionOrders,
		gateway.Row{"id": id.String()}, gateway.Row{"status": string(status)})
	if err != nil {
		return mapGatewayError(err)
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status

			break
		}
	}
	s.mu.Unlock()

	s.audit.record(ctx, fmt.Sprintf("Order #%s status changed to %s", id, status), entity.AuditSuccess)

	return nil
}
