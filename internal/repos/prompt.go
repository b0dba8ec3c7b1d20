package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/types"
)

type PromptRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.Prompt, error)
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Prompt, error)
	Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, prompts []*types.Prompt) ([]*types.Prompt, error)
	Update(ctx context.Context, tx *gorm.DB, prompt *types.Prompt) (*types.Prompt, error)
	Approve(ctx context.Context, tx *gorm.DB, id string, approvedBy uuid.UUID) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	DeleteByCategoryIDs(ctx context.Context, tx *gorm.DB, categoryIDs []string) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type promptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPromptRepo(db *gorm.DB, baseLog *logger.Logger) PromptRepo {
	repoLog := baseLog.With("repo", "PromptRepo")
	return &promptRepo{db: db, log: repoLog}
}

func (pr *promptRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Prompt, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Prompt
	if err := transaction.WithContext(ctx).
		Order("title").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *promptRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Prompt, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Prompt
	if err := transaction.WithContext(ctx).
		First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *promptRepo) Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Prompt{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pr *promptRepo) Create(ctx context.Context, tx *gorm.DB, prompts []*types.Prompt) ([]*types.Prompt, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(prompts) == 0 {
		return []*types.Prompt{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&prompts).Error; err != nil {
		return nil, err
	}
	return prompts, nil
}

func (pr *promptRepo) Update(ctx context.Context, tx *gorm.DB, prompt *types.Prompt) (*types.Prompt, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	updates := map[string]interface{}{
		"title":       prompt.Title,
		"description": prompt.Description,
		"when_to_use": prompt.WhenToUse,
		"content":     prompt.Content,
		"category_id": prompt.CategoryID,
		"variables":   prompt.Variables,
		"status":      prompt.Status,
		"updated_at":  time.Now(),
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Prompt{}).
		Where("id = ?", prompt.ID).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	var result types.Prompt
	if err := transaction.WithContext(ctx).
		First(&result, "id = ?", prompt.ID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *promptRepo) Approve(ctx context.Context, tx *gorm.DB, id string, approvedBy uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	now := time.Now()
	return transaction.WithContext(ctx).
		Model(&types.Prompt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      types.PromptStatusApproved,
			"approved_by": approvedBy,
			"approved_at": now,
		}).Error
}

func (pr *promptRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Delete(&types.Prompt{}, "id = ?", id).Error
}

func (pr *promptRepo) DeleteByCategoryIDs(ctx context.Context, tx *gorm.DB, categoryIDs []string) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(categoryIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("category_id IN ?", categoryIDs).
		Delete(&types.Prompt{}).Error
}

func (pr *promptRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.Prompt{}).Error
}

func (pr *promptRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Prompt{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
