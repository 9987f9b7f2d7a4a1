package dto

// ── 排班模块 DTO ──

// ScheduleListRequest 排班列表查询参数
//
// year+week 同时给出时以 week 为准，经周解析器换算为日期区间；
// start_date/end_date 直接给出时原样使用。
type ScheduleListRequest struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
	Year      *int   `form:"year"       binding:"omitempty,min=2000,max=2100"`
	Week      *int   `form:"week"       binding:"omitempty,min=1"`
	DriverID  *uint  `form:"driver_id"`
}

// ScheduleEntryRequest 单条排班写入（创建 / 批量对账共用）
type ScheduleEntryRequest struct {
	DriverID      uint    `json:"driver_id"       binding:"required"`
	ScheduleDate  string  `json:"schedule_date"   binding:"required,datetime=2006-01-02"`
	Status        string  `json:"status"          binding:"required"`
	VanAssigned   *string `json:"van_assigned"`
	WorkingTourID *uint   `json:"working_tour_id"`
	Notes         *string `json:"notes"`
}

// BulkReconcileRequest 批量对账请求（整周网格一次提交）
type BulkReconcileRequest struct {
	Entries []ScheduleEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// BulkReconcileResult 批量对账的单条结果
type BulkReconcileResult struct {
	Action string                     `json:"action"` // created | updated
	ID     uint                       `json:"id"`
	Data   ScheduleAssignmentResponse `json:"data"`
}

// ScheduleAssignmentResponse 排班信息响应（附带司机简要信息）
type ScheduleAssignmentResponse struct {
	ID            uint              `json:"id"`
	DriverID      uint              `json:"driver_id"`
	ScheduleDate  string            `json:"schedule_date"`
	Status        string            `json:"status"`
	VanAssigned   *string           `json:"van_assigned"`
	WorkingTourID *uint             `json:"working_tour_id"`
	WorkingTour   *WorkingTourBrief `json:"working_tour,omitempty"`
	Notes         *string           `json:"notes"`
	Driver        *DriverBrief      `json:"driver,omitempty"`
	CreatedAt     string            `json:"created_at"`
	UpdatedAt     string            `json:"updated_at"`
}

// ExportWeekRequest 按周导出查询参数
type ExportWeekRequest struct {
	Year int `form:"year" binding:"required,min=2000,max=2100"`
	Week int `form:"week" binding:"required,min=1"`
}

// ScheduleSummaryRequest 按司机聚合查询参数
type ScheduleSummaryRequest struct {
	Year *int `form:"year" binding:"omitempty,min=2000,max=2100"`
}

// StatusSummary 单个状态的聚合结果
type StatusSummary struct {
	Status string   `json:"status"`
	Count  int      `json:"count"`
	Dates  []string `json:"dates"`
}
