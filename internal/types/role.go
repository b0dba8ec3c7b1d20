package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Role carries a flat boolean permission map in jsonb, e.g.
// {"manage_prompts": true, "view_analytics": false}.
type Role struct {
	ID          int            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description string         `gorm:"column:description" json:"description,omitempty"`
	Permissions datatypes.JSON `gorm:"column:permissions;type:jsonb" json:"permissions"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Role) TableName() string {
	return "roles"
}

type UserRole struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	RoleID    int       `gorm:"primaryKey;column:role_id" json:"role_id"`
	Role      *Role     `gorm:"foreignKey:RoleID;references:ID" json:"role,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
