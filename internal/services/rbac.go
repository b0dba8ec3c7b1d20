package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/repos"
	"github.com/promptvault/promptvault-backend/internal/types"
)

// UserWithRoles is the admin view of one user and their assigned roles.
type UserWithRoles struct {
	User  *types.User   `json:"user"`
	Roles []*types.Role `json:"roles"`
}

type RBACService interface {
	ListRoles(ctx context.Context) ([]*types.Role, error)
	ListUsersWithRoles(ctx context.Context) ([]UserWithRoles, error)
	AssignRole(ctx context.Context, userID uuid.UUID, roleID int) error
	RemoveRole(ctx context.Context, userID uuid.UUID, roleID int) error
}

type rbacService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	roleRepo repos.RoleRepo
}

func NewRBACService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, roleRepo repos.RoleRepo) RBACService {
	serviceLog := log.With("service", "RBACService")
	return &rbacService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

func (rs *rbacService) ListRoles(ctx context.Context) ([]*types.Role, error) {
	roles, err := rs.roleRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

func (rs *rbacService) ListUsersWithRoles(ctx context.Context) ([]UserWithRoles, error) {
	users, err := rs.userRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	result := make([]UserWithRoles, 0, len(users))
	for _, u := range users {
		roles, rErr := rs.roleRepo.ListForUser(ctx, nil, u.ID)
		if rErr != nil {
			return nil, fmt.Errorf("list roles for user %s: %w", u.ID, rErr)
		}
		result = append(result, UserWithRoles{User: u, Roles: roles})
	}
	return result, nil
}

func (rs *rbacService) AssignRole(ctx context.Context, userID uuid.UUID, roleID int) error {
	roles, err := rs.roleRepo.GetByIDs(ctx, nil, []int{roleID})
	if err != nil {
		return fmt.Errorf("fetch role: %w", err)
	}
	if len(roles) == 0 {
		return fmt.Errorf("role %d not found", roleID)
	}
	if err := rs.roleRepo.Assign(ctx, nil, userID, roleID); err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

func (rs *rbacService) RemoveRole(ctx context.Context, userID uuid.UUID, roleID int) error {
	if err := rs.roleRepo.Remove(ctx, nil, userID, roleID); err != nil {
		return fmt.Errorf("remove role: %w", err)
	}
	return nil
}
