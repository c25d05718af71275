package localstore

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"unibite/internal/domain/entity"
	"unibite/internal/domain/service"
)

const (
	authKey     = "auth"
	auditLogKey = "system_logs"
)

// sessionStore persists the authenticated flag and the audit-log snapshot in
// the shared snapshot file, alongside the collection data.
type sessionStore struct {
	snapshot *Snapshot
}

// SessionStoreParams holds dependencies for the session store, injected by Fx.
type SessionStoreParams struct {
	fx.In

	Snapshot *Snapshot
}

// NewSessionStore creates the snapshot-backed session store.
func NewSessionStore(params SessionStoreParams) service.SessionStore {
	return &sessionStore{snapshot: params.Snapshot}
}

// LoadAuthenticated reads the persisted authenticated flag.
func (s *sessionStore) LoadAuthenticated(_ context.Context) (bool, error) {
	var authenticated bool
	ok, err := s.snapshot.Get(authKey, &authenticated)
	if err != nil {
		return false, errors.Wrap(err, "load authenticated flag")
	}

	return ok && authenticated, nil
}

// StoreAuthenticated persists the authenticated flag.
func (s *sessionStore) StoreAuthenticated(_ context.Context, authenticated bool) error {
	return errors.Wrap(s.snapshot.Set(authKey, authenticated), "store authenticated flag")
}

// ClearAuthenticated removes the persisted flag.
func (s *sessionStore) ClearAuthenticated(_ context.Context) error {
	return errors.Wrap(s.snapshot.Delete(authKey), "clear authenticated flag")
}

// LoadAuditLog reads the persisted audit-log snapshot, newest first.
func (s *sessionStore) LoadAuditLog(_ context.Context) ([]entity.AuditEntry, error) {
	var entries []entity.AuditEntry
	if _, err := s.snapshot.Get(auditLogKey, &entries); err != nil {
		return nil, errors.Wrap(err, "load audit log")
	}

	return entries, nil
}

// StoreAuditLog persists the audit-log snapshot wholesale.
func (s *sessionStore) StoreAuditLog(_ context.Context, entries []entity.AuditEntry) error {
	return errors.Wrap(s.snapshot.Set(auditLogKey, entries), "store audit log")
}
