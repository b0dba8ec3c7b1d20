package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/types"
)

type SubcategoryRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.Subcategory, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.Subcategory, error)
	ListByCategoryIDs(ctx context.Context, tx *gorm.DB, categoryIDs []string) ([]*types.Subcategory, error)
	Create(ctx context.Context, tx *gorm.DB, subcategories []*types.Subcategory) ([]*types.Subcategory, error)
	UpdateName(ctx context.Context, tx *gorm.DB, id, name string) (*types.Subcategory, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}

type subcategoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubcategoryRepo(db *gorm.DB, baseLog *logger.Logger) SubcategoryRepo {
	repoLog := baseLog.With("repo", "SubcategoryRepo")
	return &subcategoryRepo{db: db, log: repoLog}
}

func (sr *subcategoryRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Subcategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Subcategory
	if err := transaction.WithContext(ctx).
		Order("name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *subcategoryRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.Subcategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Subcategory
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

func (sr *subcategoryRepo) ListByCategoryIDs(ctx context.Context, tx *gorm.DB, categoryIDs []string) ([]*types.Subcategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Subcategory
	if len(categoryIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("category_id IN ?", categoryIDs).
		Order("name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *subcategoryRepo) Create(ctx context.Context, tx *gorm.DB, subcategories []*types.Subcategory) ([]*types.Subcategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(subcategories) == 0 {
		return []*types.Subcategory{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

func (sr *subcategoryRepo) UpdateName(ctx context.Context, tx *gorm.DB, id, name string) (*types.Subcategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Subcategory{}).
		Where("id = ?", id).
		Update("name", name).Error; err != nil {
		return nil, err
	}

	var result types.Subcategory
	if err := transaction.WithContext(ctx).
		First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *subcategoryRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	return transaction.WithContext(ctx).
		Delete(&types.Subcategory{}, "id = ?", id).Error
}

func (sr *subcategoryRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	return transaction.WithContext(ctx).
		Where("1 = 1").
		Delete(&types.Subcategory{}).Error
}
