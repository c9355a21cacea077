package dto

// ── 排班周期模块 DTO ──

// RosterPeriodResponse 排班周期信息响应
type RosterPeriodResponse struct {
	Code         string `json:"code"`
	PeriodNumber int    `json:"period_number"`
	Year         int    `json:"year"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	PublishDate  string `json:"publish_date"`
	DeadlineDate string `json:"deadline_date"`
	Status       string `json:"status"`
}

// ── 机组保障配置 DTO ──

// CrewSettingResponse 机组保障下限响应
type CrewSettingResponse struct {
	MinCaptains      int    `json:"min_captains"`
	MinFirstOfficers int    `json:"min_first_officers"`
	UpdatedAt        string `json:"updated_at"`
}

// UpdateCrewSettingRequest 更新机组保障下限请求
type UpdateCrewSettingRequest struct {
	MinCaptains      *int `json:"min_captains"       binding:"omitempty,min=0"`
	MinFirstOfficers *int `json:"min_first_officers" binding:"omitempty,min=0"`
}
