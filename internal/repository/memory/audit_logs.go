package memory

import (
	"context"
	"sync"

	"github.com/baharkarakas/ereceipt-backend/internal/models"
)

// AuditLogs keeps the most recent entries when no database is configured.
type AuditLogs struct {
	mu      sync.Mutex
	entries []models.AuditLog
	limit   int
}

func NewAuditLogs(limit int) *AuditLogs {
	return &AuditLogs{limit: limit}
}

func (a *AuditLogs) Create(_ context.Context, l models.AuditLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, l)
	if over := len(a.entries) - a.limit; over > 0 {
		a.entries = append(a.entries[:0:0], a.entries[over:]...)
	}
	return nil
}

// List returns a copy, oldest first.
func (a *AuditLogs) List() []models.AuditLog {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.AuditLog, len(a.entries))
	copy(out, a.entries)
	return out
}
