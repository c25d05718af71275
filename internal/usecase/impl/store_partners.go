package impl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"unibite/internal/domain/entity"
	domainerrors "unibite/internal/domain/errors"
	"unibite/internal/domain/gateway"
	"unibite/internal/usecase"
)

const newPartnerRating = 5.0

// AddDeliveryPartner enrolls a courier. New partners start active with a
// fresh 5.0 rating and zero completed deliveries.
func (s *adminStore) AddDeliveryPartner(ctx context.Context, input usecase.AddDeliveryPartnerInput) (*usecase.AddDeliveryPartnerOutput, error) {
	if input.Name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("partner name is required")
	}

	partner := &entity.DeliveryPartner{
		ID:         uuid.New(),
		Name:       input.Name,
		Status:     entity.PartnerActive,
		Rating:     newPartnerRating,
		JoinDate:   time.Now().UTC(),
		Phone:      input.Phone,
		Hostel:     input.Hostel,
		Room:       input.Room,
		Enrollment: input.Enrollment,
		Document:   input.Document,
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	accepted, outcome, err := insertWithFallback(ctx, s.gw, gateway.CollectionDeliveryProfiles, partnerToRow(partner))
	if err != nil {
		return nil, mapGatewayError(err)
	}

	created := partnerFromRow(accepted)
	s.mu.Lock()
	s.partners = append([]entity.DeliveryPartner{created}, s.partners...)
	s.mu.Unlock()

	s.audit.record(ctx, fmt.Sprintf("Added delivery partner: %s", created.Name), entity.AuditSuccess)

	return &usecase.AddDeliveryPartnerOutput{Partner: &created, Outcome: outcome}, nil
}

// BlockDeliveryPartner bars a courier from deliveries.
func (s *adminStore) BlockDeliveryPartner(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.gw.Update(ctx, gateway.CollectionDeliveryProfiles,
		gateway.Row{"id": id.String()}, gateway.Row{"status": string(entity.PartnerBlocked)})
	if err != nil {
		return mapGatewayError(err)
	}

	s.mu.Lock()
	for i := range s.partners {
		if s.partners[i].ID == id {
			s.partners[i].Status = entity.PartnerBlocked

			break
		}
	}
	s.mu.Unlock()

	s.audit.record(ctx, fmt.Sprintf("Blocked delivery partner ID: %s", id), entity.AuditWarning)

	return nil
}

// RemoveDeliveryPartner deletes a courier profile.
func (s *adminStore) RemoveDeliveryPartner(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.gw.Delete(ctx, gateway.CollectionDeliveryProfiles, gateway.Row{"id": id.String()}); err != nil {
		return mapGatewayError(err)
	}

	s.mu.Lock()
	for i := range s.partners {
		if s.partners[i].ID == id {
			s.partners = append(s.partners[:i], s.partners[i+1:]...)

			break
		}
	}
	s.mu.Unlock()

	s.audit.record(ctx, fmt.Sprintf("Removed delivery partner ID: %s", id), entity.AuditWarning)

	return nil
}
