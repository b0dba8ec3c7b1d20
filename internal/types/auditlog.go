package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index;column:user_id" json:"user_id,omitempty"`
	Action    string         `gorm:"not null;column:action" json:"action"`
	Table     string         `gorm:"not null;index;column:table_name" json:"table_name"`
	RecordID  string         `gorm:"not null;index;column:record_id" json:"record_id"`
	OldData   datatypes.JSON `gorm:"column:old_data;type:jsonb" json:"old_data,omitempty"`
	NewData   datatypes.JSON `gorm:"column:new_data;type:jsonb" json:"new_data,omitempty"`
	IPAddress string         `gorm:"column:ip_address" json:"ip_address,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
