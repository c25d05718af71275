package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"unibite/internal/domain/entity"
	"unibite/internal/domain/service"
)

const auditActor = "Super Admin"

// AuditLog is the newest-first administrative action log, shared between the
// entity store and the authentication machine. It lives in memory and
// mirrors itself wholesale into the session store after every append, so a
// restart rehydrates the history. Growth is unbounded; entries are small and
// the dashboard truncates for display.
type AuditLog struct {
	sessions service.SessionStore
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	entries []entity.AuditEntry
}

// AuditLogParams holds dependencies for the audit log, injected by Fx.
type AuditLogParams struct {
	fx.In

	Sessions service.SessionStore
	Logger   *slog.Logger
}

// NewAuditLog is the constructor for AuditLog.
func NewAuditLog(params AuditLogParams) *AuditLog {
	return &AuditLog{
		sessions: params.Sessions,
		logger:   params.Logger,
		now:      time.Now,
	}
}

// load rehydrates the persisted snapshot. A missing snapshot is an empty log.
func (l *AuditLog) load(ctx context.Context) error {
	entries, err := l.sessions.LoadAuditLog(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()

	return nil
}

// record prepends an entry and persists the snapshot. Persistence failures
// keep the in-memory entry and are only logged; losing one snapshot write
// must not fail the mutation that was already acknowledged remotely.
func (l *AuditLog) record(ctx context.Context, action string, severity entity.AuditSeverity) {
	entry := entity.AuditEntry{
		ID:          uuid.New(),
		Action:      action,
		PerformedBy: auditActor,
		Date:        l.now().UTC(),
		Severity:    severity,
	}

	l.mu.Lock()
	l.entries = append([]entity.AuditEntry{entry}, l.entries...)
	snapshot := make([]entity.AuditEntry, len(l.entries))
	copy(snapshot, l.entries)
	l.mu.Unlock()

	if err := l.sessions.StoreAuditLog(ctx, snapshot); err != nil {
		l.logger.Warn("Failed to persist audit log snapshot",
			slog.String("action", action), slog.Any("error", err))
	}
}

// snapshot returns a copy of the log, newest first.
func (l *AuditLog) snapshot() []entity.AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]entity.AuditEntry, len(l.entries))
	copy(out, l.entries)

	return out
}
