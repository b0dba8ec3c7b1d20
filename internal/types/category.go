package types

import (
	"time"

	"github.com/google/uuid"
)

// Category is a top-level grouping of prompts. Ids are operator-chosen
// URL-safe slugs, not generated uuids.
type Category struct {
	ID        string     `gorm:"primaryKey;column:id" json:"id"`
	Name      string     `gorm:"not null;column:name" json:"name"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

// Subcategory belongs to exactly one Category. Its id is unique across the
// whole namespace, not only within the parent.
type Subcategory struct {
	ID         string     `gorm:"primaryKey;column:id" json:"id"`
	Name       string     `gorm:"not null;column:name" json:"name"`
	CategoryID string     `gorm:"not null;index;column:category_id" json:"category_id"`
	Category   *Category  `gorm:"constraint:OnDelete:CASCADE;foreignKey:CategoryID;references:ID" json:"-"`
	CreatedBy  *uuid.UUID `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	CreatedAt  time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Subcategory) TableName() string {
	return "subcategories"
}
