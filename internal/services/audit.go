package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/baharkarakas/ereceipt-backend/internal/models"
	repo "github.com/baharkarakas/ereceipt-backend/internal/repository"
	"github.com/baharkarakas/ereceipt-backend/internal/worker"
)

// Auditor writes the audit trail in the background. Failures are logged and
// never reach the caller.
type Auditor struct {
	repo repo.AuditLogs
	wp   *worker.Pool
	now  func() time.Time
}

func NewAuditor(r repo.AuditLogs, wp *worker.Pool) *Auditor {
	return &Auditor{repo: r, wp: wp, now: time.Now}
}

func (a *Auditor) Record(entityType, entityID, action string, details map[string]any) {
	entry := models.AuditLog{
		ID:         ulid.Make().String(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Details:    details,
		CreatedAt:  a.now().UTC(),
	}
	a.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.repo.Create(ctx, entry); err != nil {
			slog.Error("audit write", "action", action, "entity_id", entityID, "err", err)
		}
	})
}
