package dto

// ── 工作线路模块 DTO ──

// CreateWorkingTourRequest 创建线路请求
type CreateWorkingTourRequest struct {
	Name        string  `json:"name"        binding:"required,min=1,max=100"`
	Description *string `json:"description"`
	Color       string  `json:"color"       binding:"required"` // #RRGGBB，服务层校验格式
	IsActive    *bool   `json:"is_active"`                      // 缺省 true
}

// UpdateWorkingTourRequest 更新线路请求（部分字段）
type UpdateWorkingTourRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	IsActive    *bool   `json:"is_active"`
}

// BulkCreateWorkingToursRequest 批量播种线路请求（幂等，已存在则跳过）
type BulkCreateWorkingToursRequest struct {
	Tours []CreateWorkingTourRequest `json:"tours" binding:"required,min=1,dive"`
}

// WorkingTourListRequest 线路列表查询参数
type WorkingTourListRequest struct {
	Active *bool `form:"active"`
}

// WorkingTourResponse 线路信息响应
type WorkingTourResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Color       string  `json:"color"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// WorkingTourBrief 线路简要信息（嵌入排班响应）
type WorkingTourBrief struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// BulkTourResult 批量播种的单条结果
type BulkTourResult struct {
	Action string              `json:"action"` // created | skipped
	Tour   WorkingTourResponse `json:"tour"`
}

// TourUsage 线路被排班引用的计数（阻止删除时返回）
// 按 id 外键与历史 van_assigned 名称两条路径分别计数
type TourUsage struct {
	ByTourID int64 `json:"by_tour_id"`
	ByName   int64 `json:"by_van_name"`
}
