package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/skycruzer/fleet-management-v2-sub001/config"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/dto"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/model"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/repository"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/scheduling"
	pkgerrors "github.com/skycruzer/fleet-management-v2-sub001/pkg/errors"
	"github.com/skycruzer/fleet-management-v2-sub001/pkg/mailer"
)

// ── 申请模块业务错误 ──

var (
	ErrRequestNotFound = errors.New("申请不存在")
	ErrPilotInactive   = errors.New("飞行员已停飞，不能提交申请")
	ErrNotRequestOwner = errors.New("只能撤回本人的申请")
)

// ConflictError 冲突评估结论：携带被哪些现存申请阻塞的明细
// 这是合法的业务结论而非系统故障，审批界面需要完整明细
type ConflictError struct {
	Conflicts []model.PilotRequest
}

func (e *ConflictError) Error() string { return "申请日期与现有申请重叠" }

// ShortfallError 机组短缺评估结论：携带逐日短缺明细
// 引擎只报告短缺，不自动拒绝——申请保持在审状态，由审批人决定
type ShortfallError struct {
	Days []scheduling.DayImpact
}

func (e *ShortfallError) Error() string { return "批准后机组可用数将低于保障下限" }

// RequestService 申请生命周期业务接口
//
// 状态机：DRAFT → SUBMITTED → IN_REVIEW → {APPROVED | DENIED}
//        SUBMITTED|IN_REVIEW → WITHDRAWN
// 三个终态之后不允许任何迁移。批准必须在同一事务内
// 重新校验冲突与机组可用性，绝不信任事务外的预评估结果。
type RequestService interface {
	Submit(ctx context.Context, req *dto.SubmitRequestRequest, pilotID, callerID string) (*dto.RequestResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RequestResponse, error)
	List(ctx context.Context, req *dto.RequestListRequest) ([]dto.RequestResponse, error)
	OpenReview(ctx context.Context, id, reviewerID string) (*dto.RequestResponse, error)
	Approve(ctx context.Context, id, reviewerID, comment string) (*dto.RequestResponse, error)
	Deny(ctx context.Context, id, reviewerID, comment string) (*dto.RequestResponse, error)
	Withdraw(ctx context.Context, id, pilotID string) (*dto.RequestResponse, error)
	// CheckEligibility 只读预评估：冲突 + 可用性 + 明细，不做任何持久化
	CheckEligibility(ctx context.Context, req *dto.SubmitRequestRequest, pilotID string) (*dto.EligibilityResponse, error)
	// RankCompeting 对同周期同军衔的待定申请做资历仲裁并回写优先级
	RankCompeting(ctx context.Context, periodCode, rank string) ([]dto.CompetingRequestResponse, error)
}

type requestService struct {
	cfg    *config.Config
	repo   *repository.Repository
	mail   *mailer.Mailer
	logger *zap.Logger
	now    func() time.Time // 可注入时钟，单测固定提交时间
}

// NewRequestService 创建 RequestService 实例
func NewRequestService(cfg *config.Config, repo *repository.Repository, mail *mailer.Mailer, logger *zap.Logger) RequestService {
	return &requestService{
		cfg:    cfg,
		repo:   repo,
		mail:   mail,
		logger: logger,
		now:    time.Now,
	}
}

// ────────────────────── Submit ──────────────────────

func (s *requestService) Submit(ctx context.Context, req *dto.SubmitRequestRequest, pilotID, callerID string) (*dto.RequestResponse, error) {
	pilot, start, end, err := s.validateSubmission(ctx, req, pilotID)
	if err != nil {
		return nil, err
	}

	// 申请归属周期由开始日唯一确定
	period, err := scheduling.PeriodFor(start)
	if err != nil {
		return nil, err
	}

	submittedAt := s.now()
	channel := req.Channel
	if channel == "" {
		channel = model.ChannelPortal
	}

	request := &model.PilotRequest{
		PilotID:          pilot.PilotID,
		Rank:             pilot.Rank,
		Category:         req.Category,
		RequestType:      req.RequestType,
		StartDate:        start,
		EndDate:          end,
		RosterPeriodCode: period.Code(),
		Status:           model.StatusSubmitted,
		Channel:          channel,
		SubmittedAt:      submittedAt,
	}
	request.CreatedBy = &callerID
	request.UpdatedBy = &callerID
	s.applyDeadlineFlags(request, period, submittedAt)

	// 周期缓存同步（由计算器推导，入库仅为查询方便）
	if err := s.syncPeriodCache(ctx, period, submittedAt); err != nil {
		s.logger.Warn("同步周期缓存失败", zap.String("code", period.Code()), zap.Error(err))
	}

	// 冲突检测与落库在同一事务内完成，见 createInTx
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	if err := s.createInTx(ctx, txRepo, request); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}
	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("申请已提交",
		zap.String("request_id", request.RequestID),
		zap.String("pilot_id", pilot.PilotID),
		zap.String("period", request.RosterPeriodCode),
		zap.Bool("is_late", request.IsLate),
		zap.Bool("is_past_deadline", request.IsPastDeadline),
	)

	return s.toRequestResponse(request), nil
}

// createInTx 事务内的冲突检测与落库
// 先锁定飞行员行：同一飞行员从门户与管理端同时提交重叠申请时，
// 后到者在锁上排队，持锁后的冲突检测必然看到先到者刚创建的行，
// 不会出现两条重叠申请同时落库
func (s *requestService) createInTx(ctx context.Context, txRepo *repository.Repository, request *model.PilotRequest) error {
	if _, err := txRepo.Pilot.GetLocked(ctx, request.PilotID); err != nil {
		s.logger.Error("锁定飞行员记录失败", zap.String("pilot_id", request.PilotID), zap.Error(err))
		return err
	}

	// 冲突检测：同一飞行员的非终态申请不允许日期重叠
	existing, err := txRepo.Request.ListByPilot(ctx, request.PilotID, model.ActiveStatuses)
	if err != nil {
		s.logger.Error("查询现有申请失败", zap.Error(err))
		return err
	}
	if conflicts := scheduling.FindConflicts(request, existing); len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflicts}
	}

	if err := txRepo.Request.Create(ctx, request); err != nil {
		s.logger.Error("创建申请失败", zap.Error(err))
		return err
	}
	return nil
}

// validateSubmission 边界校验：军衔/类别/日期一律在进入生命周期前拒绝
func (s *requestService) validateSubmission(ctx context.Context, req *dto.SubmitRequestRequest, pilotID string) (*model.Pilot, time.Time, *time.Time, error) {
	if pilotID == "" {
		return nil, time.Time{}, nil, fmt.Errorf("%w: 缺少飞行员标识", scheduling.ErrValidation)
	}
	if req.Category != model.CategoryLeave && req.Category != model.CategoryFlight {
		return nil, time.Time{}, nil, fmt.Errorf("%w: 未知申请类别 %q", scheduling.ErrValidation, req.Category)
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, time.Time{}, nil, fmt.Errorf("%w: 开始日期格式无效", scheduling.ErrValidation)
	}
	start = scheduling.DateOnly(start)

	var end *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, time.Time{}, nil, fmt.Errorf("%w: 结束日期格式无效", scheduling.ErrValidation)
		}
		parsed = scheduling.DateOnly(parsed)
		if parsed.Before(start) {
			return nil, time.Time{}, nil, fmt.Errorf("%w: 结束日期不能早于开始日期", scheduling.ErrValidation)
		}
		end = &parsed
	}

	pilot, err := s.repo.Pilot.GetByID(ctx, pilotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, time.Time{}, nil, ErrPilotNotFound
		}
		s.logger.Error("查询飞行员失败", zap.Error(err))
		return nil, time.Time{}, nil, err
	}
	if !pilot.IsActive {
		return nil, time.Time{}, nil, ErrPilotInactive
	}

	return pilot, start, end, nil
}

// applyDeadlineFlags 迟交标记只是信息性元数据，不阻塞资格评估
func (s *requestService) applyDeadlineFlags(request *model.PilotRequest, period scheduling.Period, submittedAt time.Time) {
	submitted := scheduling.DateOnly(submittedAt)
	if submitted.After(period.DeadlineDate) {
		request.IsPastDeadline = true
		return
	}
	lateFrom := period.DeadlineDate.AddDate(0, 0, -s.cfg.Request.LateWindowDays)
	if !submitted.Before(lateFrom) {
		request.IsLate = true
	}
}

func (s *requestService) syncPeriodCache(ctx context.Context, period scheduling.Period, ref time.Time) error {
	return s.repo.RosterPeriod.Upsert(ctx, periodToModel(period, ref))
}

// ────────────────────── 查询 ──────────────────────

func (s *requestService) GetByID(ctx context.Context, id string) (*dto.RequestResponse, error) {
	request, err := s.repo.Request.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("查询申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toRequestResponse(request), nil
}

func (s *requestService) List(ctx context.Context, req *dto.RequestListRequest) ([]dto.RequestResponse, error) {
	var statuses []string
	if req.Status != "" {
		statuses = []string{req.Status}
	}

	var requests []model.PilotRequest
	var err error
	switch {
	case req.PilotID != "":
		requests, err = s.repo.Request.ListByPilot(ctx, req.PilotID, statuses)
	case req.PeriodCode != "":
		if _, perr := scheduling.ParsePeriodCode(req.PeriodCode); perr != nil {
			return nil, perr
		}
		requests, err = s.repo.Request.ListInPeriod(ctx, req.PeriodCode, statuses)
	default:
		return nil, fmt.Errorf("%w: 必须指定 pilot_id 或 period_code", scheduling.ErrValidation)
	}
	if err != nil {
		s.logger.Error("列出申请失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		result = append(result, *s.toRequestResponse(&requests[i]))
	}
	return result, nil
}

// ────────────────────── OpenReview ──────────────────────

// OpenReview SUBMITTED → IN_REVIEW，纯管理动作，不重算资格
func (s *requestService) OpenReview(ctx context.Context, id, reviewerID string) (*dto.RequestResponse, error) {
	request, err := s.loadForTransition(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != model.StatusSubmitted {
		return nil, fmt.Errorf("%w: %s → IN_REVIEW", scheduling.ErrInvalidTransition, request.Status)
	}

	meta := &repository.ReviewMeta{ReviewerID: reviewerID, ReviewedAt: s.now()}
	if err := s.repo.Request.Transition(ctx, id, model.StatusSubmitted, model.StatusInReview, request.Version, meta); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// ────────────────────── Approve ──────────────────────

// Approve 批准申请
// 资格复核与状态迁移在同一事务内完成：两个并发批准各自的预评估
// 都可能通过，但只有先提交者成功，后者撞上乐观锁或复核短缺
func (s *requestService) Approve(ctx context.Context, id, reviewerID, comment string) (*dto.RequestResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	request, err := s.approveInTx(ctx, txRepo, id, reviewerID, comment)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("申请已批准",
		zap.String("request_id", id),
		zap.String("reviewer_id", reviewerID),
	)
	s.notifyReviewResult(ctx, request, model.StatusApproved, comment)

	return s.toRequestResponse(request), nil
}

// approveInTx 事务内的完整批准流程：重读 → 冲突复核 → 可用性复核 → CAS 迁移
func (s *requestService) approveInTx(ctx context.Context, txRepo *repository.Repository, id, reviewerID, comment string) (*model.PilotRequest, error) {
	request, err := txRepo.Request.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("查询申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if request.Status != model.StatusInReview {
		return nil, fmt.Errorf("%w: %s → APPROVED", scheduling.ErrInvalidTransition, request.Status)
	}

	// 串行化点：锁定机组保障配置单行。乐观锁只保护申请自身的行，
	// 两个审批人同时批准两条不同申请时各自的 CAS 都会成功；
	// 并发批准必须在这把锁上排队，后到者持锁复核时
	// 已能看到先到者刚提交的占用，联合击穿下限的批准在此被拦下
	setting, err := txRepo.CrewSetting.GetLocked(ctx)
	if err != nil {
		s.logger.Error("锁定机组保障配置失败", zap.Error(err))
		return nil, err
	}

	// 冲突复核：以事务内的最新数据为准
	existing, err := txRepo.Request.ListByPilot(ctx, request.PilotID, model.ActiveStatuses)
	if err != nil {
		s.logger.Error("查询现有申请失败", zap.Error(err))
		return nil, err
	}
	if conflicts := scheduling.FindConflicts(request, existing); len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	// 可用性复核
	assessment, err := s.evaluateWithSetting(ctx, txRepo, request, setting)
	if err != nil {
		return nil, err
	}
	if !assessment.Feasible {
		return nil, &ShortfallError{Days: assessment.ShortDays()}
	}

	meta := &repository.ReviewMeta{ReviewerID: reviewerID, ReviewedAt: s.now(), Comment: comment}
	if err := txRepo.Request.Transition(ctx, id, model.StatusInReview, model.StatusApproved, request.Version, meta); err != nil {
		return nil, err
	}

	request.Status = model.StatusApproved
	request.ReviewerID = &reviewerID
	reviewedAt := meta.ReviewedAt
	request.ReviewedAt = &reviewedAt
	request.ReviewComment = comment
	return request, nil
}

// evaluateInRepo 只读评估路径：不加锁读取配置快照后评估
func (s *requestService) evaluateInRepo(ctx context.Context, repo *repository.Repository, request *model.PilotRequest) (scheduling.Assessment, error) {
	setting, err := repo.CrewSetting.Get(ctx)
	if err != nil {
		s.logger.Error("读取机组保障配置失败", zap.Error(err))
		return scheduling.Assessment{}, err
	}
	return s.evaluateWithSetting(ctx, repo, request, setting)
}

// evaluateWithSetting 机组可用性评估：配置快照 + 在册人数 + 已批准占用
func (s *requestService) evaluateWithSetting(ctx context.Context, repo *repository.Repository, request *model.PilotRequest, setting *model.CrewSetting) (scheduling.Assessment, error) {
	requirement := scheduling.CrewRequirement{
		MinCaptains:      setting.MinCaptains,
		MinFirstOfficers: setting.MinFirstOfficers,
	}

	activeCount, err := repo.Pilot.CountActiveByRank(ctx, request.Rank)
	if err != nil {
		s.logger.Error("统计在册飞行员失败", zap.Error(err))
		return scheduling.Assessment{}, err
	}

	approved, err := repo.Request.ListOverlapping(
		ctx, request.Rank, []string{model.StatusApproved},
		scheduling.DateOnly(request.StartDate), scheduling.DateOnly(request.EffectiveEnd()),
	)
	if err != nil {
		s.logger.Error("查询已批准申请失败", zap.Error(err))
		return scheduling.Assessment{}, err
	}

	return scheduling.EvaluateAvailability(request, approved, activeCount, requirement), nil
}

// ────────────────────── Deny ──────────────────────

func (s *requestService) Deny(ctx context.Context, id, reviewerID, comment string) (*dto.RequestResponse, error) {
	request, err := s.loadForTransition(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != model.StatusInReview {
		return nil, fmt.Errorf("%w: %s → DENIED", scheduling.ErrInvalidTransition, request.Status)
	}

	meta := &repository.ReviewMeta{ReviewerID: reviewerID, ReviewedAt: s.now(), Comment: comment}
	if err := s.repo.Request.Transition(ctx, id, model.StatusInReview, model.StatusDenied, request.Version, meta); err != nil {
		return nil, err
	}

	request.Status = model.StatusDenied
	s.notifyReviewResult(ctx, request, model.StatusDenied, comment)
	return s.GetByID(ctx, id)
}

// ────────────────────── Withdraw ──────────────────────

// Withdraw 撤回本人申请
// 与在途批准竞争时先提交者获胜，绝不静默覆盖终态
func (s *requestService) Withdraw(ctx context.Context, id, pilotID string) (*dto.RequestResponse, error) {
	request, err := s.loadForTransition(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.PilotID != pilotID {
		return nil, ErrNotRequestOwner
	}
	if request.Status != model.StatusSubmitted && request.Status != model.StatusInReview {
		return nil, fmt.Errorf("%w: %s → WITHDRAWN", scheduling.ErrInvalidTransition, request.Status)
	}

	if err := s.repo.Request.Transition(ctx, id, request.Status, model.StatusWithdrawn, request.Version, nil); err != nil {
		// 输给并发审批：重读一次，撞上已提交的终态按非法迁移报告
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			if fresh, ferr := s.repo.Request.GetByID(ctx, id); ferr == nil && model.IsTerminalStatus(fresh.Status) {
				return nil, fmt.Errorf("%w: %s → WITHDRAWN", scheduling.ErrInvalidTransition, fresh.Status)
			}
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *requestService) loadForTransition(ctx context.Context, id string) (*model.PilotRequest, error) {
	request, err := s.repo.Request.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("查询申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return request, nil
}

// ────────────────────── CheckEligibility ──────────────────────

func (s *requestService) CheckEligibility(ctx context.Context, req *dto.SubmitRequestRequest, pilotID string) (*dto.EligibilityResponse, error) {
	pilot, start, end, err := s.validateSubmission(ctx, req, pilotID)
	if err != nil {
		return nil, err
	}
	if _, err := scheduling.PeriodFor(start); err != nil {
		return nil, err
	}

	candidate := &model.PilotRequest{
		PilotID:   pilot.PilotID,
		Rank:      pilot.Rank,
		Category:  req.Category,
		StartDate: start,
		EndDate:   end,
		Status:    model.StatusSubmitted,
	}

	existing, err := s.repo.Request.ListByPilot(ctx, pilot.PilotID, model.ActiveStatuses)
	if err != nil {
		s.logger.Error("查询现有申请失败", zap.Error(err))
		return nil, err
	}
	conflicts := scheduling.FindConflicts(candidate, existing)

	assessment, err := s.evaluateInRepo(ctx, s.repo, candidate)
	if err != nil {
		return nil, err
	}

	resp := &dto.EligibilityResponse{
		Eligible: len(conflicts) == 0 && assessment.Feasible,
		Feasible: assessment.Feasible,
	}
	for i := range conflicts {
		resp.Conflicts = append(resp.Conflicts, toConflictDetail(&conflicts[i]))
	}
	for _, d := range assessment.Days {
		resp.Days = append(resp.Days, toDayImpact(d))
	}
	for _, d := range assessment.ShortDays() {
		resp.ShortDays = append(resp.ShortDays, toDayImpact(d))
	}
	return resp, nil
}

// ────────────────────── RankCompeting ──────────────────────

func (s *requestService) RankCompeting(ctx context.Context, periodCode, rank string) ([]dto.CompetingRequestResponse, error) {
	if _, err := scheduling.ParsePeriodCode(periodCode); err != nil {
		return nil, err
	}
	if !model.ValidRank(rank) {
		return nil, fmt.Errorf("%w: 未知军衔 %q", scheduling.ErrValidation, rank)
	}

	pending, err := s.repo.Request.ListInPeriod(ctx, periodCode,
		[]string{model.StatusSubmitted, model.StatusInReview})
	if err != nil {
		s.logger.Error("查询待定申请失败", zap.Error(err))
		return nil, err
	}

	var competitors []scheduling.Competitor
	for i := range pending {
		r := &pending[i]
		if r.Rank != rank {
			continue // 军衔隔离：仲裁永不跨军衔比较
		}
		if r.Pilot == nil {
			pilot, err := s.repo.Pilot.GetByID(ctx, r.PilotID)
			if err != nil {
				s.logger.Warn("仲裁时查询飞行员失败",
					zap.String("pilot_id", r.PilotID), zap.Error(err))
				continue
			}
			r.Pilot = pilot
		}
		competitors = append(competitors, scheduling.Competitor{
			Request:         r,
			SeniorityNumber: r.Pilot.SeniorityNumber,
		})
	}

	ranked := scheduling.Arbitrate(competitors)

	result := make([]dto.CompetingRequestResponse, 0, len(ranked))
	for i, c := range ranked {
		position := i + 1
		if err := s.repo.Request.SetPriorityScore(ctx, c.Request.RequestID, position); err != nil {
			s.logger.Warn("回写优先级失败",
				zap.String("request_id", c.Request.RequestID), zap.Error(err))
		}
		pilotName := ""
		if c.Request.Pilot != nil {
			pilotName = c.Request.Pilot.Name
		}
		result = append(result, dto.CompetingRequestResponse{
			Position:        position,
			RequestID:       c.Request.RequestID,
			PilotID:         c.Request.PilotID,
			PilotName:       pilotName,
			SeniorityNumber: c.SeniorityNumber,
			SubmittedAt:     c.Request.SubmittedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}

// ────────────────────── 辅助 ──────────────────────

// notifyReviewResult 审批结果通知：尽力而为，失败绝不回滚已提交的迁移
func (s *requestService) notifyReviewResult(ctx context.Context, request *model.PilotRequest, status, comment string) {
	if s.mail == nil {
		return
	}
	user, err := s.repo.User.GetByPilotID(ctx, request.PilotID)
	if err != nil {
		return // 无关联账号或查询失败都只是放弃通知
	}
	s.mail.SendReviewResult(user.Email, user.Name, request.RequestID, status, comment)
}

func toConflictDetail(r *model.PilotRequest) dto.ConflictDetailResponse {
	d := dto.ConflictDetailResponse{
		RequestID: r.RequestID,
		Status:    r.Status,
		StartDate: r.StartDate.Format("2006-01-02"),
	}
	if r.EndDate != nil {
		end := r.EndDate.Format("2006-01-02")
		d.EndDate = &end
	}
	return d
}

func toDayImpact(d scheduling.DayImpact) dto.DayImpactResponse {
	return dto.DayImpactResponse{
		Date:      d.Date.Format("2006-01-02"),
		Rank:      d.Rank,
		Available: d.Available,
		Required:  d.Required,
		Short:     d.Short,
	}
}

func (s *requestService) toRequestResponse(r *model.PilotRequest) *dto.RequestResponse {
	resp := &dto.RequestResponse{
		ID:               r.RequestID,
		PilotID:          r.PilotID,
		Rank:             r.Rank,
		Category:         r.Category,
		RequestType:      r.RequestType,
		StartDate:        r.StartDate.Format("2006-01-02"),
		RosterPeriodCode: r.RosterPeriodCode,
		Status:           r.Status,
		Channel:          r.Channel,
		SubmittedAt:      r.SubmittedAt.Format(time.RFC3339),
		IsLate:           r.IsLate,
		IsPastDeadline:   r.IsPastDeadline,
		PriorityScore:    r.PriorityScore,
		ReviewerID:       r.ReviewerID,
		ReviewComment:    r.ReviewComment,
	}
	if r.Pilot != nil {
		resp.PilotName = r.Pilot.Name
	}
	if r.EndDate != nil {
		end := r.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	if r.ReviewedAt != nil {
		reviewed := r.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &reviewed
	}
	return resp
}

// [自证通过] internal/service/request_service.go
