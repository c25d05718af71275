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

// AddUser creates a platform account. New accounts always start active.
func (s *adminStore) AddUser(ctx context.Context, input usecase.AddUserInput) (*usecase.AddUserOutput, error) {
	if input.Name == "" || input.Email == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("user name and email are required")
	}
	if !input.Role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage(fmt.Sprintf("unknown role %q", input.Role))
	}

	user := &entity.User{
		ID:       uuid.New(),
		Name:     input.Name,
		Email:    input.Email,
		Role:     input.Role,
		Status:   entity.UserActive,
		JoinDate: time.Now().UTC(),
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	accepted, outcome, err := insertWithFallback(ctx, s.gw, gateway.CollectionUsers, userToRow(user))
	if err != nil {
		return nil, mapGatewayError(err)
	}

	created := userFromRow(accepted)
	s.mu.Lock()
	s.users = append([]entity.User{created}, s.users...)
	s.mu.Unlock()

	s.audit.record(ctx, fmt.Sprintf("Added new user: %s", created.Name), entity.AuditSuccess)

	return &usecase.AddUserOutput{User: &created, Outcome: outcome}, nil
}

// BlockUser bars an account from ordering.
func (s *adminStore) BlockUser(ctx context.Context, id uuid.UUID) error {
	if err := s.setUserStatus(ctx, id, entity.UserBlocked); err != nil {
		return err
	}

	s.audit.record(ctx, fmt.Sprintf("Blocked user ID: %s", id), entity.AuditWarning)

	return nil
}

// UnblockUser restores a blocked account.
func (s *adminStore) UnblockUser(ctx context.Context, id uuid.UUID) error {
	if err := s.setUserStatus(ctx, id, entity.UserActive); err != nil {
		return err
	}

	s.audit.record(ctx, fmt.Sprintf("Unblocked user ID: %s", id), entity.AuditSuccess)

	return nil
}

// setUserStatus writes the status flip remote-first and merges on ack. Two
// racing flips both succeed remotely; the cache reflects whichever ack lands
// last, matching the backend's last-write-wins row state.
func (s *adminStore) setUserStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.gw.Update(ctx, gateway.CollectionUsers,
		gateway.Row{"id": id.String()}, gateway.Row{"status": string(status)})
	if err != nil {
		return mapGatewayError(err)
	}

	s.mu.Lock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Status = status

			break
		}
	}
	s.mu.Unlock()

	return nil
}

// DeleteUser removes an account permanently.
func (s *adminStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.gw.Delete(ctx, gateway.CollectionUsers, gateway.Row{"id": id.String()}); err != nil {
		return mapGatewayError(err)
	}

	s.mu.Lock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)

			break
		}
	}
	s.mu.Unlock()

	s.audit.record(ctx, fmt.Sprintf("Deleted user ID: %s", id), entity.AuditWarning)

	return nil
}
