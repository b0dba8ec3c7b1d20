package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/repos"
	"github.com/promptvault/promptvault-backend/internal/types"
)

// AuditEntry describes one mutation for the audit trail. OldData and
// NewData are marshalled into jsonb as-is; either may be nil.
type AuditEntry struct {
	UserID    *uuid.UUID
	Action    string
	Table     string
	RecordID  string
	OldData   interface{}
	NewData   interface{}
	IPAddress string
}

type AuditService interface {
	// Record is best effort: failures are logged, never returned, so an
	// audit outage cannot block the mutation it describes.
	Record(ctx context.Context, entry AuditEntry)
	Query(ctx context.Context, filter repos.AuditLogFilter) ([]*types.AuditLog, error)
}

type auditService struct {
	log          *logger.Logger
	auditLogRepo repos.AuditLogRepo
}

func NewAuditService(log *logger.Logger, auditLogRepo repos.AuditLogRepo) AuditService {
	serviceLog := log.With("service", "AuditService")
	return &auditService{
		log:          serviceLog,
		auditLogRepo: auditLogRepo,
	}
}

func (s *auditService) Record(ctx context.Context, entry AuditEntry) {
	row := &types.AuditLog{
		ID:        uuid.New(),
		UserID:    entry.UserID,
		Action:    entry.Action,
		Table:     entry.Table,
		RecordID:  entry.RecordID,
		IPAddress: entry.IPAddress,
	}
	if entry.OldData != nil {
		if raw, err := json.Marshal(entry.OldData); err == nil {
			row.OldData = datatypes.JSON(raw)
		}
	}
	if entry.NewData != nil {
		if raw, err := json.Marshal(entry.NewData); err == nil {
			row.NewData = datatypes.JSON(raw)
		}
	}
	if _, err := s.auditLogRepo.Create(ctx, nil, []*types.AuditLog{row}); err != nil {
		s.log.Warn("Recording audit entry failed",
			"action", entry.Action, "table", entry.Table, "record_id", entry.RecordID, "error", err)
	}
}

func (s *auditService) Query(ctx context.Context, filter repos.AuditLogFilter) ([]*types.AuditLog, error) {
	return s.auditLogRepo.Query(ctx, nil, filter)
}
