package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/skycruzer/fleet-management-v2-sub001/config"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/dto"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/model"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/repository"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/scheduling"
)

func testConfig() *config.Config {
	return &config.Config{
		Request: config.RequestConfig{LateWindowDays: 7},
	}
}

// newRequestSvc 固定时钟的 RequestService，邮件通知关闭
func newRequestSvc(env *testEnv, fixed time.Time) *requestService {
	svc := NewRequestService(testConfig(), env.repo, nil, zap.NewNop()).(*requestService)
	svc.now = func() time.Time { return fixed }
	return svc
}

func strPtr(s string) *string { return &s }

// testSubmitTime 截止日之前的安全提交时间
func testSubmitTime() time.Time { return time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC) }

// ── 提交 ──

func TestSubmitResolvesPeriodFromStartDate(t *testing.T) {
	env := newTestEnv(10, 10)
	env.seedPilots(model.RankCaptain, 12)
	svc := newRequestSvc(env, time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC))

	resp, err := svc.Submit(context.Background(), &dto.SubmitRequestRequest{
		Category:    model.CategoryLeave,
		RequestType: "ANNUAL",
		StartDate:   "2026-01-10",
		EndDate:     strPtr("2026-01-15"),
	}, "Captain-01", "admin-1")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if resp.Status != model.StatusSubmitted {
		t.Errorf("status = %s, want SUBMITTED", resp.Status)
	}
	if resp.RosterPeriodCode != "RP02/2026" {
		t.Errorf("period = %s, want RP02/2026", resp.RosterPeriodCode)
	}
	if resp.Channel != model.ChannelPortal {
		t.Errorf("channel = %s, want %s", resp.Channel, model.ChannelPortal)
	}
	if resp.IsLate || resp.IsPastDeadline {
		t.Errorf("11月初提交不应打迟交标记: late=%v past=%v", resp.IsLate, resp.IsPastDeadline)
	}

	// 周期缓存应被同步
	if _, err := env.periods.GetByCode(context.Background(), "RP02/2026"); err != nil {
		t.Errorf("周期缓存未同步: %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	env := newTestEnv(10, 10)
	env.seedPilots(model.RankCaptain, 12)
	svc := newRequestSvc(env, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	cases := []struct {
		name    string
		req     dto.SubmitRequestRequest
		pilotID string
		wantErr error
	}{
		{
			name:    "结束早于开始",
			req:     dto.SubmitRequestRequest{Category: model.CategoryLeave, RequestType: "ANNUAL", StartDate: "2026-01-15", EndDate: strPtr("2026-01-10")},
			pilotID: "Captain-01",
			wantErr: scheduling.ErrValidation,
		},
		{
			name:    "日期格式无效",
			req:     dto.SubmitRequestRequest{Category: model.CategoryLeave, RequestType: "ANNUAL", StartDate: "2026/01/10"},
			pilotID: "Captain-01",
			wantErr: scheduling.ErrValidation,
		},
		{
			name:    "未知类别",
			req:     dto.SubmitRequestRequest{Category: "VACATION", RequestType: "ANNUAL", StartDate: "2026-01-10"},
			pilotID: "Captain-01",
			wantErr: scheduling.ErrValidation,
		},
		{
			name:    "飞行员不存在",
			req:     dto.SubmitRequestRequest{Category: model.CategoryLeave, RequestType: "ANNUAL", StartDate: "2026-01-10"},
			pilotID: "nobody",
			wantErr: ErrPilotNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, &tc.req, tc.pilotID, "admin-1")
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestSubmitRejectsInactivePilot(t *testing.T) {
	env := newTestEnv(10, 10)
	ids := env.seedPilots(model.RankCaptain, 12)
	env.pilots.pilots[ids[0]].IsActive = false
	svc := newRequestSvc(env, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Submit(context.Background(), &dto.SubmitRequestRequest{
		Category: model.CategoryLeave, RequestType: "ANNUAL", StartDate: "2026-01-10",
	}, ids[0], "admin-1")
	if !errors.Is(err, ErrPilotInactive) {
		t.Errorf("err = %v, want ErrPilotInactive", err)
	}
}

func TestSubmitConflictDetection(t *testing.T) {
	env := newTestEnv(10, 10)
	env.seedPilots(model.RankCaptain, 12)
	svc := newRequestSvc(env, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first, err := svc.Submit(ctx, &dto.SubmitRequestRequest{
		Category: model.CategoryLeave, RequestType: "ANNUAL",
		StartDate: "2026-01-10", EndDate: strPtr("2026-01-15"),
	}, "Captain-01", "admin-1")
	if err != nil {
		t.Fatalf("首次提交: %v", err)
	}

	// 同飞行员日期重叠：边界日 2026-01-15 与 14..20 重叠
	_, err = svc.Submit(ctx, &dto.SubmitRequestRequest{
		Category: model.CategoryFlight, RequestType: "OFF",
		StartDate: "2026-01-14", EndDate: strPtr("2026-01-20"),
	}, "Captain-01", "admin-1")

	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("err = %v, want *ConflictError", err)
	}
	if len(conflictErr.Conflicts) != 1 || conflictErr.Conflicts[0].RequestID != first.ID {
		t.Errorf("冲突明细应指向首个申请: %+v", conflictErr.Conflicts)
	}

	// 不同飞行员同日期不冲突
	if _, err := svc.Submit(ctx, &dto.SubmitRequestRequest{
		Category: model.CategoryLeave, RequestType: "ANNUAL",
		StartDate: "2026-01-14", EndDate: strPtr("2026-01-20"),
	}, "Captain-02", "admin-1"); err != nil {
		t.Errorf("不同飞行员不应冲突: %v", err)
	}
}

func TestSubmitLateFlags(t *testing.T) {
	// RP02/2026: 开始 2026-01-03，发布 2025-12-24，截止 2025-12-03
	cases := []struct {
		name        string
		submittedAt time.Time
		wantLate    bool
		wantPastDue bool
	}{
		{"正常提交", time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC), false, false},
		{"迟交窗口首日", time.Date(2025, 11, 26, 8, 0, 0, 0, time.UTC), true, false},
		{"截止日当天", time.Date(2025, 12, 3, 23, 0, 0, 0, time.UTC), true, false},
		{"截止日次日", time.Date(2025, 12, 4, 0, 30, 0, 0, time.UTC), false, true},
		{"严重逾期", time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC), false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(10, 10)
			env.seedPilots(model.RankCaptain, 12)
			svc := newRequestSvc(env, tc.submittedAt)

			resp, err := svc.Submit(context.Background(), &dto.SubmitRequestRequest{
				Category: model.CategoryLeave, RequestType: "ANNUAL",
				StartDate: "2026-01-10",
			}, "Captain-01", "admin-1")
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if resp.IsLate != tc.wantLate || resp.IsPastDeadline != tc.wantPastDue {
				t.Errorf("late=%v past=%v, want late=%v past=%v",
					resp.IsLate, resp.IsPastDeadline, tc.wantLate, tc.wantPastDue)
			}
			if resp.Status != model.StatusSubmitted {
				t.Errorf("迟交与逾期均不阻塞受理, status = %s", resp.Status)
			}
		})
	}
}

// ── 生命周期 ──

func submitOne(t *testing.T, svc *requestService, pilotID, start, end string) *dto.RequestResponse {
	t.Helper()
	req := &dto.SubmitRequestRequest{
		Category: model.CategoryLeave, RequestType: "ANNUAL", StartDate: start,
	}
	if end != "" {
		req.EndDate = strPtr(end)
	}
	resp, err := svc.Submit(context.Background(), req, pilotID, "admin-1")
	if err != nil {
		t.Fatalf("Submit(%s): %v", pilotID, err)
	}
	return resp
}

func TestFullApprovalLifecycle(t *testing.T) {
	env := newTestEnv(10, 10)
	env.seedPilots(model.RankCaptain, 12)
	svc := newRequestSvc(env, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	submitted := submitOne(t, svc, "Captain-01", "2026-01-10", "2026-01-15")

	inReview, err := svc.OpenReview(ctx, submitted.ID, "mgr-1")
	if err != nil {
		t.Fatalf("OpenReview: %v", err)
	}
	if inReview.Status != model.StatusInReview {
		t.Fatalf("status = %s, want IN_REVIEW", inReview.Status)
	}

	approved, err := svc.Approve(ctx, submitted.ID, "mgr-1", "同意")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != model.StatusApproved {
		t.Errorf("status = %s, want APPROVED", approved.Status)
	}
	if approved.ReviewerID == nil || *approved.ReviewerID != "mgr-1" {
		t.Errorf("reviewer = %v, want mgr-1", approved.ReviewerID)
	}
	if approved.ReviewComment != "同意" {
		t.Errorf("comment = %q", approved.ReviewComment)
	}

	// 版本应随两次迁移递增到 3
	stored := env.requests.requests[submitted.ID]
	if stored.Version != 3 {
		t.Errorf("version = %d, want 3", stored.Version)
	}
}

func TestSubmitRunsConflictCheckUnderPilotLock(t *testing.T) {
	env := newTestEnv(10, 10)
	env.seedPilots(model.RankCaptain, 12)
	svc := newRequestSvc(env, testSubmitTime())

	submitOne(t, svc, "Captain-01", "2026-01-10", "2026-01-15")
	if env.pilots.lockCalls != 1 {
		t.Errorf("提交应锁定飞行员行一次，实际 %d 次", env.pilots.lockCalls)
	}

	// 重叠提交在持锁后被检出，不落库
	_, err := svc.Submit(context.Background(), &dto.SubmitRequestRequest{
		Category: model.CategoryLeave, RequestType: "ANNUAL",
		StartDate: "2026-01-14", EndDate: strPtr("2026-01-20"),
	}, "Captain-01", "admin-1")
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("期望 ConflictError，得到: %v", err)
	}
	if env.pilots.lockCalls != 2 {
		t.Errorf("冲突检测必须发生在串行化点之后，实际锁定 %d 次", env.pilots.lockCalls)
	}
	if len(env.requests.requests) != 1 {
		t.Errorf("冲突申请不应落库，存量 %d 条", len(env.requests.requests))
	}
}

func TestApproveReadsSettingsUnderLock(t *testing.T) {
	env := newTestEnv(10, 10)
	env.seedPilots(model.RankCaptain, 12)
	svc := newRequestSvc(env, testSubmitTime())
	ctx := context.Background()

	submitted := submitOne(t, svc, "Captain-01", "2026-01-10", "2026-01-15")
	if _, err := svc.OpenReview(ctx, submitted.ID, "mgr-1"); err != nil {
		t.Fatalf("OpenReview: %v", err)
	}
	if _, err := svc.Approve(ctx, submitted.ID, "mgr-1", ""); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if env.settings.lockCalls != 1 {
		t.Errorf("批准应持锁读取机组保障配置一次，实际 %d 次", env.settings.lockCalls)
	}

	// 只读预评估不加锁，不得影响并发批准的排队
	if _, err := svc.CheckEligibility(ctx, &dto.SubmitRequestRequest{
		Category: model.CategoryLeave, RequestType: "ANNUAL", StartDate: "2026-02-10",
	}, "Captain-02"); err != nil {
		t.Fatalf("CheckEligibility: %v", err)
	}
	if env.settings.lockCalls != 1 {
		t.Errorf("只读评估不应加锁，锁定次数变为 %d", env.settings.lockCalls)
	}
}

func TestInvalidTransitions(t *testing.T) {
	env := newTestEnv(10, 10)
	env.seedPilots(model.RankCaptain, 12)
	svc := newRequestSvc(env, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	submitted := submitOne(t, svc, "Captain-01", "2026-01-10", "")

	// SUBMITTED 不能直接批准或拒绝
	if _, err := svc.Approve(ctx, submitted.ID, "mgr-1", ""); !errors.Is(err, scheduling.ErrInvalidTransition) {
		t.Errorf("Approve from SUBMITTED: err = %v, want ErrInvalidTransition", err)
	}
	if _, err := svc.Deny(ctx, submitted.ID, "mgr-1", ""); !errors.Is(err, scheduling.ErrInvalidTransition) {
		t.Errorf("Deny from SUBMITTED: err = %v, want ErrInvalidTransition", err)
	}

	if _, err := svc.OpenReview(ctx, submitted.ID, "mgr-1"); err != nil {
		t.Fatalf("OpenReview: %v", err)
	}
	// IN_REVIEW 不能重复开审
	if _, err := svc.OpenReview(ctx, submitted.ID, "mgr-1"); !errors.Is(err, scheduling.ErrInvalidTransition) {
		t.Errorf("重复 OpenReview: err = %v, want ErrInvalidTransition", err)
	}

	if _, err := svc.Deny(ctx, submitted.ID, "mgr-1", "排班冲突"); err != nil {
		t.Fatalf("Deny: %v", err)
	}

	// DENIED 是终态
	if _, err := svc.Approve(ctx, submitted.ID, "mgr-1", ""); !errors.Is(err, scheduling.ErrInvalidTransition) {
		t.Errorf("Approve from DENIED: err = %v, want ErrInvalidTransition", err)
	}
	if _, err := svc.Withdraw(ctx, submitted.ID, "Captain-01"); !errors.Is(err, scheduling.ErrInvalidTransition) {
		t.Errorf("Withdraw from DENIED: err = %v, want ErrInvalidTransition", err)
	}
}

func TestWithdraw(t *testing.T) {
	env := newTestEnv(10, 10)
	env.seedPilots(model.RankCaptain, 12)
	svc := newRequestSvc(env, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	submitted := submitOne(t, svc, "Captain-01", "2026-01-10", "")

	// 只能撤回本人的申请
	if _, err := svc.Withdraw(ctx, submitted.ID, "Captain-02"); !errors.Is(err, ErrNotRequestOwner) {
		t.Errorf("他人撤回: err = %v, want ErrNotRequestOwner", err)
	}

	withdrawn, err := svc.Withdraw(ctx, submitted.ID, "Captain-01")
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if withdrawn.Status != model.StatusWithdrawn {
		t.Errorf("status = %s, want WITHDRAWN", withdrawn.Status)
	}

	// 撤回后审批必须失败，终态不可覆盖
	if _, err := svc.Approve(ctx, submitted.ID, "mgr-1", ""); !errors.Is(err, scheduling.ErrInvalidTransition) {
		t.Errorf("Approve after Withdraw: err = %v, want ErrInvalidTransition", err)
	}
}

// approveBeforeWithdrawRepo 在撤回落笔前抢先提交一条批准，模拟并发审批获胜
type approveBeforeWithdrawRepo struct {
	*mockRequestRepo
}

func (r *approveBeforeWithdrawRepo) Transition(ctx context.Context, requestID, fromStatus, toStatus string, version int, meta *repository.ReviewMeta) error {
	if toStatus == model.StatusWithdrawn {
		if req, ok := r.requests[requestID]; ok && req.Status == fromStatus {
			req.Status = model.StatusApproved
			req.Version++
		}
	}
	return r.mockRequestRepo.Transition(ctx, requestID, fromStatus, toStatus, version, meta)
}

func TestWithdrawLosingRaceReportsTerminalState(t *testing.T) {
	env := newTestEnv(10, 10)
	env.seedPilots(model.RankCaptain, 12)
	svc := newRequestSvc(env, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	submitted := submitOne(t, svc, "Captain-01", "2026-01-10", "")
	env.repo.Request = &approveBeforeWithdrawRepo{mockRequestRepo: env.requests}

	// 撤回输给并发批准：报告非法迁移而非泛化的并发冲突
	if _, err := svc.Withdraw(ctx, submitted.ID, "Captain-01"); !errors.Is(err, scheduling.ErrInvalidTransition) {
		t.Fatalf("Withdraw losing race: err = %v, want ErrInvalidTransition", err)
	}

	// 先提交的终态不被覆盖
	got, err := env.requests.GetByID(ctx, submitted.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != model.StatusApproved {
		t.Errorf("status = %s, want APPROVED", got.Status)
	}
}

func TestWithdrawnSlotReusable(t *testing.T) {
	env := newTestEnv(10, 10)
	env.seedPilots(model.RankCaptain, 12)
	svc := newRequestSvc(env, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first := submitOne(t, svc, "Captain-01", "2026-01-10", "2026-01-15")
	if _, err := svc.Withdraw(ctx, first.ID, "Captain-01"); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}

	// 撤回的申请不再占用日期，可重新提交同区间
	if _, err := svc.Submit(ctx, &dto.SubmitRequestRequest{
		Category: model.CategoryLeave, RequestType: "ANNUAL",
		StartDate: "2026-01-10", EndDate: strPtr("2026-01-15"),
	}, "Captain-01", "admin-1"); err != nil {
		t.Errorf("撤回后重新提交: %v", err)
	}
}

// ── 批准时的可行性复核 ──

func TestApproveBlockedByShortfall(t *testing.T) {
	// 10 名在册机长，保障下限 10：任何一人休假都会跌破下限
	env := newTestEnv(10, 10)
	env.seedPilots(model.RankCaptain, 10)
	svc := newRequestSvc(env, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	submitted := submitOne(t, svc, "Captain-01", "2026-01-10", "2026-01-12")
	if _, err := svc.OpenReview(ctx, submitted.ID, "mgr-1"); err != nil {
		t.Fatalf("OpenReview: %v", err)
	}

	_, err := svc.Approve(ctx, submitted.ID, "mgr-1", "")
	var shortfall *ShortfallError
	if !errors.As(err, &shortfall) {
		t.Fatalf("err = %v, want *ShortfallError", err)
	}
	if len(shortfall.Days) != 3 {
		t.Errorf("短缺天数 = %d, want 3", len(shortfall.Days))
	}
	for _, d := range shortfall.Days {
		if d.Available != 9 || d.Required != 10 || d.Short != 1 {
			t.Errorf("day %s: available=%d required=%d short=%d",
				d.Date.Format("2006-01-02"), d.Available, d.Required, d.Short)
		}
	}

	// 引擎不自动拒绝，申请保持在审
	got, _ := svc.GetByID(ctx, submitted.ID)
	if got.Status != model.StatusInReview {
		t.Errorf("短缺后 status = %s, want IN_REVIEW", got.Status)
	}
}

func TestApproveAtExactMinimumSucceeds(t *testing.T) {
	// 11 名机长，下限 10：批准后恰好剩 10 人，等于下限视为可行
	env := newTestEnv(10, 10)
	env.seedPilots(model.RankCaptain, 11)
	svc := newRequestSvc(env, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	submitted := submitOne(t, svc, "Captain-01", "2026-01-10", "2026-01-12")
	if _, err := svc.OpenReview(ctx, submitted.ID, "mgr-1"); err != nil {
		t.Fatalf("OpenReview: %v", err)
	}
	if _, err := svc.Approve(ctx, submitted.ID, "mgr-1", ""); err != nil {
		t.Errorf("恰好达到下限应可批准: %v", err)
	}
}

func TestApproveCountsExistingApprovedLeave(t *testing.T) {
	// 12 名机长，下限 10：已有一人获批休假后，第二个重叠申请批准即跌破
	env := newTestEnv(10, 10)
	env.seedPilots(model.RankCaptain, 12)
	svc := newRequestSvc(env, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first := submitOne(t, svc, "Captain-01", "2026-01-10", "2026-01-15")
	if _, err := svc.OpenReview(ctx, first.ID, "mgr-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Approve(ctx, first.ID, "mgr-1", ""); err != nil {
		t.Fatalf("首个批准: %v", err)
	}

	second := submitOne(t, svc, "Captain-02", "2026-01-12", "2026-01-14")
	if _, err := svc.OpenReview(ctx, second.ID, "mgr-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Approve(ctx, second.ID, "mgr-1", ""); err != nil {
		t.Fatalf("第二个批准（12-1-1=10 恰好达标）: %v", err)
	}

	third := submitOne(t, svc, "Captain-03", "2026-01-13", "2026-01-13")
	if _, err := svc.OpenReview(ctx, third.ID, "mgr-1"); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Approve(ctx, third.ID, "mgr-1", "")
	var shortfall *ShortfallError
	if !errors.As(err, &shortfall) {
		t.Fatalf("第三个批准应短缺: err = %v", err)
	}
}

func TestApproveRankIndependence(t *testing.T) {
	// 机长紧张不影响副驾驶的批准
	env := newTestEnv(10, 10)
	env.seedPilots(model.RankCaptain, 10)
	env.seedPilots(model.RankFirstOfficer, 15)
	svc := newRequestSvc(env, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	fo := submitOne(t, svc, "FirstOfficer-01", "2026-01-10", "2026-01-12")
	if _, err := svc.OpenReview(ctx, fo.ID, "mgr-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Approve(ctx, fo.ID, "mgr-1", ""); err != nil {
		t.Errorf("副驾驶批准不应受机长人数影响: %v", err)
	}
}

// ── 资格预评估 ──

func TestCheckEligibility(t *testing.T) {
	env := newTestEnv(10, 10)
	env.seedPilots(model.RankCaptain, 10)
	svc := newRequestSvc(env, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	resp, err := svc.CheckEligibility(ctx, &dto.SubmitRequestRequest{
		Category: model.CategoryLeave, RequestType: "ANNUAL",
		StartDate: "2026-01-10", EndDate: strPtr("2026-01-12"),
	}, "Captain-01")
	if err != nil {
		t.Fatalf("CheckEligibility: %v", err)
	}

	if resp.Eligible || resp.Feasible {
		t.Errorf("10 人下限 10 应不可行: eligible=%v feasible=%v", resp.Eligible, resp.Feasible)
	}
	if len(resp.Days) != 3 || len(resp.ShortDays) != 3 {
		t.Errorf("明细天数 days=%d short=%d, want 3/3", len(resp.Days), len(resp.ShortDays))
	}

	// 预评估是只读操作
	if len(env.requests.requests) != 0 {
		t.Errorf("预评估不应落库, got %d requests", len(env.requests.requests))
	}
}

// ── 资历仲裁 ──

func TestRankCompeting(t *testing.T) {
	env := newTestEnv(10, 10)
	env.seedPilots(model.RankCaptain, 5)
	env.seedPilots(model.RankFirstOfficer, 5)
	ctx := context.Background()

	base := time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC)
	// 资历 3 先提交，资历 1 后提交，资历 2 最后；另有一个副驾驶申请不得混入
	for i, seed := range []struct {
		pilotID string
		offset  time.Duration
	}{
		{"Captain-03", 0},
		{"Captain-01", time.Hour},
		{"Captain-02", 2 * time.Hour},
		{"FirstOfficer-01", 30 * time.Minute},
	} {
		svc := newRequestSvc(env, base.Add(seed.offset))
		pilot := env.pilots.pilots[seed.pilotID]
		if _, err := svc.Submit(ctx, &dto.SubmitRequestRequest{
			Category: model.CategoryLeave, RequestType: "ANNUAL",
			StartDate: "2026-01-10", EndDate: strPtr("2026-01-12"),
		}, pilot.PilotID, "admin-1"); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	svc := newRequestSvc(env, base.Add(3*time.Hour))
	ranked, err := svc.RankCompeting(ctx, "RP02/2026", model.RankCaptain)
	if err != nil {
		t.Fatalf("RankCompeting: %v", err)
	}

	if len(ranked) != 3 {
		t.Fatalf("len = %d, want 3（副驾驶不得混入）", len(ranked))
	}
	wantOrder := []string{"Captain-01", "Captain-02", "Captain-03"}
	for i, want := range wantOrder {
		if ranked[i].PilotID != want {
			t.Errorf("position %d = %s, want %s", i+1, ranked[i].PilotID, want)
		}
		if ranked[i].Position != i+1 {
			t.Errorf("position 字段 = %d, want %d", ranked[i].Position, i+1)
		}
		// 优先级应回写
		if env.requests.requests[ranked[i].RequestID].PriorityScore != i+1 {
			t.Errorf("priority_score 未回写: %s", ranked[i].RequestID)
		}
	}
}

func TestRankCompetingValidation(t *testing.T) {
	env := newTestEnv(10, 10)
	svc := newRequestSvc(env, time.Now())
	ctx := context.Background()

	if _, err := svc.RankCompeting(ctx, "RP1/2026", model.RankCaptain); !errors.Is(err, scheduling.ErrValidation) {
		t.Errorf("不规范编码: err = %v, want ErrValidation", err)
	}
	if _, err := svc.RankCompeting(ctx, "RP02/2026", "COMMODORE"); !errors.Is(err, scheduling.ErrValidation) {
		t.Errorf("未知军衔: err = %v, want ErrValidation", err)
	}
}

// ── 查询 ──

func TestListRequests(t *testing.T) {
	env := newTestEnv(10, 10)
	env.seedPilots(model.RankCaptain, 12)
	svc := newRequestSvc(env, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	submitOne(t, svc, "Captain-01", "2026-01-10", "")
	submitOne(t, svc, "Captain-01", "2026-02-10", "")
	submitOne(t, svc, "Captain-02", "2026-01-11", "")

	byPilot, err := svc.List(ctx, &dto.RequestListRequest{PilotID: "Captain-01"})
	if err != nil {
		t.Fatalf("List by pilot: %v", err)
	}
	if len(byPilot) != 2 {
		t.Errorf("len = %d, want 2", len(byPilot))
	}

	byPeriod, err := svc.List(ctx, &dto.RequestListRequest{PeriodCode: "RP02/2026"})
	if err != nil {
		t.Fatalf("List by period: %v", err)
	}
	if len(byPeriod) != 2 {
		t.Errorf("len = %d, want 2（2026-01-10 与 01-11 同属 RP02/2026）", len(byPeriod))
	}

	if _, err := svc.List(ctx, &dto.RequestListRequest{}); !errors.Is(err, scheduling.ErrValidation) {
		t.Errorf("无过滤条件: err = %v, want ErrValidation", err)
	}

	if _, err := svc.GetByID(ctx, "missing"); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("GetByID missing: err = %v, want ErrRequestNotFound", err)
	}
}

// [自证通过] internal/service/request_service_test.go
