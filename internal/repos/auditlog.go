package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/types"
)

// AuditLogFilter narrows an audit-log query; zero values mean "no filter".
type AuditLogFilter struct {
	Table    string
	RecordID string
	UserID   *uuid.UUID
	Limit    int
}

type AuditLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entries []*types.AuditLog) ([]*types.AuditLog, error)
	Query(ctx context.Context, tx *gorm.DB, filter AuditLogFilter) ([]*types.AuditLog, error)
}

type auditLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
	repoLog := baseLog.With("repo", "AuditLogRepo")
	return &auditLogRepo{db: db, log: repoLog}
}

func (ar *auditLogRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.AuditLog) ([]*types.AuditLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(entries) == 0 {
		return []*types.AuditLog{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (ar *auditLogRepo) Query(ctx context.Context, tx *gorm.DB, filter AuditLogFilter) ([]*types.AuditLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	query := transaction.WithContext(ctx).
		Model(&types.AuditLog{}).
		Order("created_at DESC").
		Limit(limit)

	if filter.Table != "" {
		query = query.Where("table_name = ?", filter.Table)
	}
	if filter.RecordID != "" {
		query = query.Where("record_id = ?", filter.RecordID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var results []*types.AuditLog
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
