package impl

import (
	"context"
	"encoding/json"
	"fmt"

	"unibite/internal/domain/entity"
	domainerrors "unibite/internal/domain/errors"
	"unibite/internal/domain/gateway"
	"unibite/internal/errors"
	"unibite/internal/usecase"
)

// UpdateSettings merges one option into the settings blob and persists the
// whole blob under its fixed row id. Partial patches are never written; the
// blob is small and whole-writes keep the remote row canonical.
func (s *adminStore) UpdateSettings(ctx context.Context, input usecase.UpdateSettingsInput) error {
	if input.Key == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("settings key is required")
	}
	if !entity.RecognizedSettingsSection(input.Section) {
		return domainerrors.ErrUnknownSection.WrapMessage(fmt.Sprintf("section %q", input.Section))
	}

	s.mu.RLock()
	candidate := s.settings.Clone()
	s.mu.RUnlock()

	candidate.Set(input.Section, input.Key, input.Value)

	blob, err := json.Marshal(candidate)
	if err != nil {
		return domainerrors.ErrInternalError.WrapMessage(err.Error())
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := gateway.Row{"id": settingsRowID, "data": string(blob)}
	err = s.gw.Update(ctx, gateway.CollectionPlatformSettings,
		gateway.Row{"id": settingsRowID}, gateway.Row{"data": string(blob)})
	if errors.Is(err, gateway.ErrNotFound) {
		_, err = s.gw.Insert(ctx, gateway.CollectionPlatformSettings, row)
	}
	if err != nil {
		return mapGatewayError(err)
	}

	s.mu.Lock()
	s.settings = candidate
	s.mu.Unlock()

	target := input.Key
	if input.Section != "" {
		target = input.Section + "." + input.Key
	}
	s.audit.record(ctx, fmt.Sprintf("Updated setting %s", target), entity.AuditSuccess)

	return nil
}
