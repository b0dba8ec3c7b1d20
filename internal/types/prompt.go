package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PromptStatusDraft    = "draft"
	PromptStatusApproved = "approved"
)

// Prompt is a reusable text template with named {{variable}} placeholders.
// CategoryID may reference either a category or a subcategory id; the
// hierarchy is flattened at the assignment level.
type Prompt struct {
	ID          string         `gorm:"primaryKey;column:id" json:"id"`
	Title       string         `gorm:"not null;column:title" json:"title"`
	Description string         `gorm:"column:description" json:"description"`
	WhenToUse   string         `gorm:"column:when_to_use" json:"when_to_use"`
	Content     string         `gorm:"not null;column:content" json:"content"`
	CategoryID  string         `gorm:"not null;index;column:category_id" json:"category_id"`
	Variables   datatypes.JSON `gorm:"column:variables;type:jsonb" json:"variables"`
	Status      string         `gorm:"column:status;default:approved" json:"status"`
	CreatedBy   *uuid.UUID     `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	ApprovedBy  *uuid.UUID     `gorm:"type:uuid;column:approved_by" json:"approved_by,omitempty"`
	ApprovedAt  *time.Time     `gorm:"column:approved_at" json:"approved_at,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Prompt) TableName() string {
	return "prompts"
}

// PromptEvent is one analytics row recording a user action against a prompt.
type PromptEvent struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PromptID  string     `gorm:"not null;index;column:prompt_id" json:"prompt_id"`
	UserID    *uuid.UUID `gorm:"type:uuid;column:user_id" json:"user_id,omitempty"`
	Action    string     `gorm:"not null;column:action" json:"action"`
	CreatedAt time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (PromptEvent) TableName() string {
	return "prompt_analytics"
}
