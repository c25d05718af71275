package service

import (
	"context"

	"unibite/internal/domain/entity"
)

// SessionStore is the key-value persistence surface for state that must
// survive a process restart: the authenticated flag and the audit-log
// snapshot. Lookups may be backed by slow storage, which is why rehydration
// exposes a loading phase to callers.
type SessionStore interface {
	// LoadAuthenticated reads the persisted authenticated flag.
	LoadAuthenticated(ctx context.Context) (bool, error)

	// StoreAuthenticated persists the authenticated flag.
	StoreAuthenticated(ctx context.Context, authenticated bool) error

	// ClearAuthenticated removes the persisted flag.
	ClearAuthenticated(ctx context.Context) error

	// LoadAuditLog reads the persisted audit-log snapshot, newest first.
	LoadAuditLog(ctx context.Context) ([]entity.AuditEntry, error)

	// StoreAuditLog persists the audit-log snapshot wholesale.
	StoreAuditLog(ctx context.Context, entries []entity.AuditEntry) error
}
