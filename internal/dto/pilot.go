package dto

// ── 飞行员模块 DTO ──

// CreatePilotRequest 创建飞行员请求
type CreatePilotRequest struct {
	EmployeeNo      string `json:"employee_no"      binding:"required,max=20"`
	Name            string `json:"name"             binding:"required,min=2,max=100"`
	Rank            string `json:"rank"             binding:"required,oneof=Captain FirstOfficer"`
	SeniorityNumber int    `json:"seniority_number" binding:"required,min=1"`
}

// UpdatePilotRequest 更新飞行员请求
type UpdatePilotRequest struct {
	Name            *string `json:"name"             binding:"omitempty,min=2,max=100"`
	Rank            *string `json:"rank"             binding:"omitempty,oneof=Captain FirstOfficer"`
	SeniorityNumber *int    `json:"seniority_number" binding:"omitempty,min=1"`
	IsActive        *bool   `json:"is_active"`
}

// PilotListRequest 飞行员列表查询参数
type PilotListRequest struct {
	PaginationRequest
}

// PilotResponse 飞行员信息响应
type PilotResponse struct {
	ID              string `json:"id"`
	EmployeeNo      string `json:"employee_no"`
	Name            string `json:"name"`
	Rank            string `json:"rank"`
	SeniorityNumber int    `json:"seniority_number"`
	IsActive        bool   `json:"is_active"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}
