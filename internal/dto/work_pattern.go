package dto

// ── 工作模式模块 DTO ──

// UpsertWorkPatternRequest 创建或整体替换工作模式请求
//
// 以 driver_id 为键：已有则整体替换（非合并），没有则新建。
// work_days / allowed_tours 缺省（JSON null）表示无约束，
// 空数组表示「显式不允许任何项」，两者语义不同。
type UpsertWorkPatternRequest struct {
	DriverID      uint     `json:"driver_id"      binding:"required"`
	Type          string   `json:"type"           binding:"required"`
	WorkDays      []string `json:"work_days"`
	AllowedTours  []string `json:"allowed_tours"`
	PreferredTour *string  `json:"preferred_tour"`
}

// WorkPatternResponse 工作模式响应
type WorkPatternResponse struct {
	ID            uint         `json:"id"`
	DriverID      uint         `json:"driver_id"`
	Type          string       `json:"type"`
	WorkDays      []string     `json:"work_days"`
	AllowedTours  []string     `json:"allowed_tours"`
	PreferredTour *string      `json:"preferred_tour,omitempty"`
	Driver        *DriverBrief `json:"driver,omitempty"`
	CreatedAt     string       `json:"created_at"`
	UpdatedAt     string       `json:"updated_at"`
}
