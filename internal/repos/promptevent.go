package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/types"
)

type PromptEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, events []*types.PromptEvent) ([]*types.PromptEvent, error)
	ListByPromptID(ctx context.Context, tx *gorm.DB, promptID string, limit int) ([]*types.PromptEvent, error)
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.PromptEvent, error)
}

type promptEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPromptEventRepo(db *gorm.DB, baseLog *logger.Logger) PromptEventRepo {
	repoLog := baseLog.With("repo", "PromptEventRepo")
	return &promptEventRepo{db: db, log: repoLog}
}

func (er *promptEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.PromptEvent) ([]*types.PromptEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	if len(events) == 0 {
		return []*types.PromptEvent{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (er *promptEventRepo) ListByPromptID(ctx context.Context, tx *gorm.DB, promptID string, limit int) ([]*types.PromptEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	if limit <= 0 {
		limit = 100
	}

	var results []*types.PromptEvent
	if err := transaction.WithContext(ctx).
		Where("prompt_id = ?", promptID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *promptEventRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.PromptEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	if limit <= 0 {
		limit = 100
	}

	var results []*types.PromptEvent
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
