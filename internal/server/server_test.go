package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fiberafrica/missioncontrol/internal/auth"
	"github.com/fiberafrica/missioncontrol/internal/authorization"
	"github.com/fiberafrica/missioncontrol/internal/config"
	dropcabledomain "github.com/fiberafrica/missioncontrol/internal/dropcable/domain"
	inventoryrequestdomain "github.com/fiberafrica/missioncontrol/internal/inventoryrequest/domain"
	linkbuilddomain "github.com/fiberafrica/missioncontrol/internal/linkbuild/domain"
	staffdomain "github.com/fiberafrica/missioncontrol/internal/staff/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testWebSecret    = "web-secret"
	testMobileSecret = "mobile-secret"

	testUserID  = "0b6f4a52-8d5e-4f0a-9d3c-4f6a1f0c1a01"
	testStaffID = "7c2e9d10-1b4a-4a8e-8f61-2d9b3c4e5f02"
)

type fakeAuthz struct {
	err   error
	calls []string
}

func (f *fakeAuthz) Authorize(ctx context.Context, role string, object string, action string) error {
	f.calls = append(f.calls, role+":"+object+":"+action)
	return f.err
}

type fakeDropCableService struct {
	dropcabledomain.Service

	costs          dropcabledomain.OrderCosts
	costsErr       error
	totalsErr      error
	byTechnician   []dropcabledomain.Order
	lastTechnician string
	createCalled   bool
}

func (f *fakeDropCableService) Costs(ctx context.Context, id string) (dropcabledomain.OrderCosts, error) {
	return f.costs, f.costsErr
}

func (f *fakeDropCableService) WeeklyTotals(ctx context.Context, req dropcabledomain.WeeklyTotalsRequest) (dropcabledomain.WeeklyTotals, error) {
	if f.totalsErr != nil {
		return dropcabledomain.WeeklyTotals{}, f.totalsErr
	}
	return dropcabledomain.WeeklyTotals{ClientID: req.ClientID, Week: req.Week, OrderType: req.OrderType}, nil
}

func (f *fakeDropCableService) ListByTechnician(ctx context.Context, technicianID string) ([]dropcabledomain.Order, error) {
	f.lastTechnician = technicianID
	return f.byTechnician, nil
}

func (f *fakeDropCableService) Create(ctx context.Context, req dropcabledomain.CreateOrderRequest) (dropcabledomain.Order, error) {
	f.createCalled = true
	return dropcabledomain.Order{ID: "new"}, nil
}

type fakeLinkBuildService struct {
	linkbuilddomain.Service

	byTechnician []linkbuilddomain.Order
}

func (f *fakeLinkBuildService) ListByTechnicianID(ctx context.Context, technicianID string) ([]linkbuilddomain.Order, error) {
	return f.byTechnician, nil
}

type fakeStaffService struct {
	staffdomain.Service

	member *staffdomain.Staff
}

func (f *fakeStaffService) GetByAuthUserID(ctx context.Context, authUserID string) (staffdomain.Staff, error) {
	if f.member == nil {
		return staffdomain.Staff{}, staffdomain.ErrNotFound
	}
	return *f.member, nil
}

type fakeInventoryRequestService struct {
	inventoryrequestdomain.Service

	approveErr   error
	lastReviewer string
}

func (f *fakeInventoryRequestService) Approve(ctx context.Context, id string, reviewerID string) (inventoryrequestdomain.Detail, error) {
	f.lastReviewer = reviewerID
	if f.approveErr != nil {
		return inventoryrequestdomain.Detail{}, f.approveErr
	}
	return inventoryrequestdomain.Detail{Request: inventoryrequestdomain.Request{ID: id, Status: inventoryrequestdomain.StatusApproved}}, nil
}

type testServer struct {
	authz     *fakeAuthz
	dropCable *fakeDropCableService
	linkBuild *fakeLinkBuildService
	staff     *fakeStaffService
	requests  *fakeInventoryRequestService
	router    *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		authz:     &fakeAuthz{},
		dropCable: &fakeDropCableService{},
		linkBuild: &fakeLinkBuildService{},
		staff:     &fakeStaffService{},
		requests:  &fakeInventoryRequestService{},
		router:    gin.New(),
	}
	ts.router.Use(ErrorHandlingMiddleware())

	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:       testWebSecret,
		MobileJWTSecret: testMobileSecret,
	}}
	NewServer(ServerParams{
		Gin:                 ts.router,
		Cfg:                 cfg,
		Verifier:            auth.NewVerifier(cfg, zap.NewNop()),
		AuthzSvc:            ts.authz,
		DropCableSvc:        ts.dropCable,
		LinkBuildSvc:        ts.linkBuild,
		StaffSvc:            ts.staff,
		InventoryRequestSvc: ts.requests,
	})
	return ts
}

func signToken(t *testing.T, secret string, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   testUserID,
		"email": "ops@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	if role != "" {
		claims["user_metadata"] = map[string]any{"role": role}
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	ts.router.ServeHTTP(resp, req)
	return resp
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) errorPayload {
	t.Helper()
	var out errorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out.Error
}

func TestAPIRequiresToken(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(http.MethodGet, "/api/drop-cable/abc/costs", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, errorTypeAuthentication, decodeError(t, resp).Type)
	assert.Empty(t, ts.authz.calls)
}

func TestAPIRejectsMobileToken(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(http.MethodGet, "/api/drop-cable/abc/costs", signToken(t, testMobileSecret, auth.RoleAdmin), nil)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAPIAcceptsCookieToken(t *testing.T) {
	ts := newTestServer(t)
	ts.dropCable.costs = dropcabledomain.OrderCosts{OrderID: "abc", Total: 1250}

	req := httptest.NewRequest(http.MethodGet, "/api/drop-cable/abc/costs", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: signToken(t, testWebSecret, auth.RoleAdmin)})
	resp := httptest.NewRecorder()
	ts.router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	var out struct {
		Data dropcabledomain.OrderCosts `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, "abc", out.Data.OrderID)
	assert.Equal(t, 1250.0, out.Data.Total)
	assert.Equal(t, []string{"admin:costs:view"}, ts.authz.calls)
}

func TestAPIRejectsTokenWithoutRole(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(http.MethodGet, "/api/drop-cable/abc/costs", signToken(t, testWebSecret, ""), nil)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Empty(t, ts.authz.calls)
}

func TestAPIForbiddenByPolicy(t *testing.T) {
	ts := newTestServer(t)
	ts.authz.err = authorization.ErrForbidden

	resp := ts.do(http.MethodGet, "/api/drop-cable/abc/costs", signToken(t, testWebSecret, auth.RoleTechnician), nil)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, errorTypeForbidden, decodeError(t, resp).Type)
}

func TestDropCableCostsNotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.dropCable.costsErr = dropcabledomain.ErrNotFound

	resp := ts.do(http.MethodGet, "/api/drop-cable/abc/costs", signToken(t, testWebSecret, auth.RoleAdmin), nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, errorTypeNotFound, decodeError(t, resp).Type)
}

func TestDropCableWeeklyTotalsInvalidWeek(t *testing.T) {
	ts := newTestServer(t)
	ts.dropCable.totalsErr = dropcabledomain.ErrInvalidWeek

	resp := ts.do(http.MethodPost, "/api/drop-cable/weekly-totals", signToken(t, testWebSecret, auth.RoleAdmin), map[string]string{
		"client_id": "c1",
		"week":      "not a week",
	})

	require.Equal(t, http.StatusBadRequest, resp.Code)
	payload := decodeError(t, resp)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, dropcabledomain.ErrInvalidWeek.Error(), payload.Errors[0].Code)
}

func TestCreateDropCableRejectsMalformedWeek(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(http.MethodPost, "/api/drop-cable", signToken(t, testWebSecret, auth.RoleAdmin), map[string]any{
		"circuit_number": "FA-1",
		"week":           true,
	})

	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, errorTypeInvalidRequest, decodeError(t, resp).Type)
	assert.False(t, ts.dropCable.createCalled)
}

func TestMobileOrdersOtherTechnicianForbidden(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(http.MethodGet, "/mobile/orders/someone-else", signToken(t, testMobileSecret, auth.RoleTechnician), nil)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestMobileOrdersWithoutStaffRecord(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(http.MethodGet, "/mobile/orders/"+testUserID, signToken(t, testMobileSecret, auth.RoleTechnician), nil)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"data":{"drop_cables":[],"link_builds":[],"total":0}}`, resp.Body.String())
}

func TestMobileOrdersCombinesJobKinds(t *testing.T) {
	ts := newTestServer(t)
	ts.staff.member = &staffdomain.Staff{ID: testStaffID}
	ts.dropCable.byTechnician = []dropcabledomain.Order{{ID: "d1"}, {ID: "d2"}}
	ts.linkBuild.byTechnician = []linkbuilddomain.Order{{ID: "l1"}}

	resp := ts.do(http.MethodGet, "/mobile/orders/"+testUserID, signToken(t, testMobileSecret, auth.RoleTechnician), nil)

	require.Equal(t, http.StatusOK, resp.Code)
	var out struct {
		Data technicianOrders `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, 3, out.Data.Total)
	assert.Len(t, out.Data.DropCables, 2)
	assert.Len(t, out.Data.LinkBuilds, 1)
	assert.Equal(t, testStaffID, ts.dropCable.lastTechnician)
}

func TestMobileRoutesRejectWebToken(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(http.MethodGet, "/mobile/orders/"+testUserID, signToken(t, testWebSecret, auth.RoleTechnician), nil)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestApproveInventoryRequestUsesReviewerStaffID(t *testing.T) {
	ts := newTestServer(t)
	ts.staff.member = &staffdomain.Staff{ID: testStaffID}

	resp := ts.do(http.MethodPost, "/api/inventory-requests/r1/approve", signToken(t, testWebSecret, auth.RoleSuperAdmin), nil)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, testStaffID, ts.requests.lastReviewer)
}

func TestApproveInventoryRequestAlreadyProcessed(t *testing.T) {
	ts := newTestServer(t)
	ts.staff.member = &staffdomain.Staff{ID: testStaffID}
	ts.requests.approveErr = inventoryrequestdomain.ErrNotPending

	resp := ts.do(http.MethodPost, "/api/inventory-requests/r1/approve", signToken(t, testWebSecret, auth.RoleSuperAdmin), nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "request not found or already processed", decodeError(t, resp).Message)
}
