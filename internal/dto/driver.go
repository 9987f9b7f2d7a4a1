package dto

// ── 司机模块 DTO ──

// CreateDriverRequest 创建司机请求
type CreateDriverRequest struct {
	Name       string  `json:"name"        binding:"required,min=1,max=100"`
	DriverCode string  `json:"driver_code" binding:"required,min=1,max=30"`
	Email      *string `json:"email"       binding:"omitempty,email"`
	Status     *string `json:"status"      binding:"omitempty,oneof=active inactive"`
}

// UpdateDriverRequest 更新司机请求
type UpdateDriverRequest struct {
	Name       *string `json:"name"        binding:"omitempty,min=1,max=100"`
	DriverCode *string `json:"driver_code" binding:"omitempty,min=1,max=30"`
	Email      *string `json:"email"       binding:"omitempty,email"`
	Status     *string `json:"status"      binding:"omitempty,oneof=active inactive"`
}

// DriverListRequest 司机列表查询参数
type DriverListRequest struct {
	Status   string `form:"status"    binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page"      binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// DriverResponse 司机信息响应
type DriverResponse struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	DriverCode string  `json:"driver_code"`
	Email      *string `json:"email,omitempty"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// DriverBrief 司机简要信息（嵌入排班/模式响应）
type DriverBrief struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	DriverCode string `json:"driver_code"`
}
