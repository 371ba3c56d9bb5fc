package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/ereceipt-backend/internal/models"
	"github.com/baharkarakas/ereceipt-backend/internal/repository"
)

type auditLogsRepo struct{ pool *pgxpool.Pool }

func NewAuditLogs(pool *pgxpool.Pool) repository.AuditLogs {
	return &auditLogsRepo{pool: pool}
}

func (r *auditLogsRepo) Create(ctx context.Context, l models.AuditLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs(id, entity_type, entity_id, action, details, created_at)
		 VALUES($1,$2,$3,$4,$5,$6)`,
		l.ID, l.EntityType, l.EntityID, l.Action, l.Details, l.CreatedAt,
	)
	return err
}
