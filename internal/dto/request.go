package dto

// ── 申请模块 DTO ──

// SubmitRequestRequest 提交申请请求
// end_date 为空表示单日飞行申请
type SubmitRequestRequest struct {
	PilotID     string  `json:"pilot_id"     binding:"omitempty,uuid"` // 管理员代录时指定；机组端从 Token 解析
	Category    string  `json:"category"     binding:"required,oneof=LEAVE FLIGHT"`
	RequestType string  `json:"request_type" binding:"required,max=30"`
	StartDate   string  `json:"start_date"   binding:"required"` // "2026-01-10"
	EndDate     *string `json:"end_date"`
	Channel     string  `json:"channel"      binding:"omitempty,oneof=portal email phone manual"`
}

// ReviewRequestRequest 审批动作请求（批准/拒绝共用）
type ReviewRequestRequest struct {
	Comment string `json:"comment" binding:"omitempty,max=500"`
}

// RequestListRequest 申请列表查询参数
type RequestListRequest struct {
	PaginationRequest
	PilotID    string `form:"pilot_id"    binding:"omitempty,uuid"`
	PeriodCode string `form:"period_code" binding:"omitempty,max=10"`
	Status     string `form:"status"      binding:"omitempty,oneof=DRAFT SUBMITTED IN_REVIEW APPROVED DENIED WITHDRAWN"`
}

// RequestResponse 申请信息响应
type RequestResponse struct {
	ID               string  `json:"id"`
	PilotID          string  `json:"pilot_id"`
	PilotName        string  `json:"pilot_name,omitempty"`
	Rank             string  `json:"rank"`
	Category         string  `json:"category"`
	RequestType      string  `json:"request_type"`
	StartDate        string  `json:"start_date"`
	EndDate          *string `json:"end_date,omitempty"`
	RosterPeriodCode string  `json:"roster_period_code"`
	Status           string  `json:"status"`
	Channel          string  `json:"submission_channel"`
	SubmittedAt      string  `json:"submitted_at"`
	IsLate           bool    `json:"is_late"`
	IsPastDeadline   bool    `json:"is_past_deadline"`
	PriorityScore    int     `json:"priority_score"`
	ReviewerID       *string `json:"reviewer_id,omitempty"`
	ReviewedAt       *string `json:"reviewed_at,omitempty"`
	ReviewComment    string  `json:"review_comment,omitempty"`
}

// DayImpactResponse 单日机组影响明细
type DayImpactResponse struct {
	Date      string `json:"date"`
	Rank      string `json:"rank"`
	Available int    `json:"available"`
	Required  int    `json:"required"`
	Short     int    `json:"short"`
}

// ConflictDetailResponse 冲突明细：指明被哪些现存申请阻塞
type ConflictDetailResponse struct {
	RequestID string  `json:"request_id"`
	Status    string  `json:"status"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date,omitempty"`
}

// EligibilityResponse 资格评估结果
// 冲突与短缺都是合法结论而非错误，必须携带足以向审批人解释的明细
type EligibilityResponse struct {
	Eligible  bool                     `json:"eligible"`
	Conflicts []ConflictDetailResponse `json:"conflicts,omitempty"`
	Feasible  bool                     `json:"feasible"`
	ShortDays []DayImpactResponse      `json:"short_days,omitempty"`
	Days      []DayImpactResponse      `json:"days,omitempty"`
}

// CompetingRequestResponse 同周期同军衔竞争申请的仲裁排序结果
type CompetingRequestResponse struct {
	Position        int    `json:"position"` // 1 为最高优先级
	RequestID       string `json:"request_id"`
	PilotID         string `json:"pilot_id"`
	PilotName       string `json:"pilot_name,omitempty"`
	SeniorityNumber int    `json:"seniority_number"`
	SubmittedAt     string `json:"submitted_at"`
}
