package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/types"
)

type CategoryRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.Category, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.Category, error)
	Exists(ctx context.Context, tx *gorm.DB) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, categories []*types.Category) ([]*types.Category, error)
	UpdateName(ctx context.Context, tx *gorm.DB, id, name string) (*types.Category, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	repoLog := baseLog.With("repo", "CategoryRepo")
	return &categoryRepo{db: db, log: repoLog}
}

func (cr *categoryRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Category
	if err := transaction.WithContext(ctx).
		Order("name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *categoryRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Category
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *categoryRepo) Exists(ctx context.Context, tx *gorm.DB) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Category{}).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *categoryRepo) Create(ctx context.Context, tx *gorm.DB, categories []*types.Category) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(categories) == 0 {
		return []*types.Category{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (cr *categoryRepo) UpdateName(ctx context.Context, tx *gorm.DB, id, name string) (*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Category{}).
		Where("id = ?", id).
		Update("name", name).Error; err != nil {
		return nil, err
	}

	var result types.Category
	if err := transaction.WithContext(ctx).
		First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *categoryRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).
		Delete(&types.Category{}, "id = ?", id).Error
}

func (cr *categoryRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.Category{}).Error
}

func (cr *categoryRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Category{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
