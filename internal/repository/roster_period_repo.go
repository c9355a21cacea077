package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skycruzer/fleet-management-v2-sub001/internal/model"
)

// RosterPeriodRepository 排班周期缓存数据访问接口
// 周期由计算器推导后同步进库，绝不接受用户创建
type RosterPeriodRepository interface {
	Upsert(ctx context.Context, period *model.RosterPeriod) error
	GetByCode(ctx context.Context, code string) (*model.RosterPeriod, error)
	ListByYear(ctx context.Context, year int) ([]model.RosterPeriod, error)
}

// rosterPeriodRepo RosterPeriodRepository 的 GORM 实现
type rosterPeriodRepo struct {
	db *gorm.DB
}

// NewRosterPeriodRepo 创建 RosterPeriodRepository 实例
func NewRosterPeriodRepo(db *gorm.DB) RosterPeriodRepository {
	return &rosterPeriodRepo{db: db}
}

// Upsert 以周期编码为键写入缓存，已存在时刷新派生字段
func (r *rosterPeriodRepo) Upsert(ctx context.Context, period *model.RosterPeriod) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"start_date", "end_date", "publish_date", "deadline_date", "status", "updated_at",
			}),
		}).
		Create(period).Error
}

func (r *rosterPeriodRepo) GetByCode(ctx context.Context, code string) (*model.RosterPeriod, error) {
	var period model.RosterPeriod
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *rosterPeriodRepo) ListByYear(ctx context.Context, year int) ([]model.RosterPeriod, error) {
	var periods []model.RosterPeriod
	err := r.db.WithContext(ctx).
		Where("year = ?", year).
		Order("period_number").
		Find(&periods).Error
	return periods, err
}

// [自证通过] internal/repository/roster_period_repo.go
