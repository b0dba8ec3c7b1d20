package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/types"
)

type RoleRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.Role, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]*types.Role, error)
	ListForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Role, error)
	Assign(ctx context.Context, tx *gorm.DB, userID uuid.UUID, roleID int) error
	Remove(ctx context.Context, tx *gorm.DB, userID uuid.UUID, roleID int) error
}

type roleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoleRepo(db *gorm.DB, baseLog *logger.Logger) RoleRepo {
	repoLog := baseLog.With("repo", "RoleRepo")
	return &roleRepo{db: db, log: repoLog}
}

func (rr *roleRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Role
	if err := transaction.WithContext(ctx).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *roleRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []int) ([]*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Role
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

func (rr *roleRepo) ListForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Role, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Role
	if err := transaction.WithContext(ctx).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *roleRepo) Assign(ctx context.Context, tx *gorm.DB, userID uuid.UUID, roleID int) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	// Duplicate assignment is not an error.
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UserRole{}).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Create(&types.UserRole{UserID: userID, RoleID: roleID}).Error
}

func (rr *roleRepo) Remove(ctx context.Context, tx *gorm.DB, userID uuid.UUID, roleID int) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&types.UserRole{}).Error
}
