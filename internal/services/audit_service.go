package services

import (
	"context"

	"github.com/rvmoura/pagamentos-api/internal/models"
	"github.com/rvmoura/pagamentos-api/pkg/logger"
	"gorm.io/gorm"
)

// AuditService records write operations into the audit log table.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Log records an audit entry. Failures are logged, never propagated: audit
// must not turn a successful write into a caller-visible error.
func (s *AuditService) Log(ctx context.Context, action, entity, entityKey, details string) {
	entry := &models.AuditLog{
		Action:    action,
		Entity:    entity,
		EntityKey: entityKey,
		Details:   details,
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		logger.Error("failed to write audit log", "action", action, "entity", entity, "error", err)
	}
}

// List retrieves audit log entries, newest first.
func (s *AuditService) List(ctx context.Context, limit, offset int) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	if err := s.db.WithContext(ctx).Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, total, err
}
