package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/logiport/portal/internal/api/v1"
	"github.com/logiport/portal/internal/auth"
	"github.com/logiport/portal/internal/config"
	"github.com/logiport/portal/internal/rbac"
	"github.com/logiport/portal/internal/service"
	"github.com/logiport/portal/internal/testutil"
	"github.com/logiport/portal/internal/types"
	"github.com/stretchr/testify/suite"
)

type RouterSuite struct {
	testutil.BaseServiceTestSuite
	cfg    *config.Configuration
	router *gin.Engine
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	cfg := *s.GetConfig()
	cfg.Auth.Secret = "router-secret"
	s.cfg = &cfg

	stores := s.GetStores()
	params := service.NewServiceParams(
		s.GetLogger(),
		s.cfg,
		s.GetDB(),
		s.GetS3(),
		s.GetSentry(),
		s.GetMailer(),
		stores.UserRepo,
		stores.DocumentRepo,
		stores.ShipmentRepo,
		stores.TradeRepo,
		stores.ActivityLogRepo,
	)
	activity := service.NewActivityService(params)
	stats := service.NewStatisticsService(params)
	notification := service.NewNotificationService(params)

	handlers := Handlers{
		Health:    v1.NewHealthHandler(nil, s.GetLogger()),
		Dashboard: v1.NewDashboardHandler(service.NewDashboardService(params, stats, activity), s.GetLogger()),
		Shipment:  v1.NewShipmentHandler(service.NewShipmentService(params, activity), s.GetLogger()),
		Trade:     v1.NewTradeHandler(service.NewTradeService(params, activity, notification), s.GetLogger()),
		Document:  v1.NewDocumentHandler(service.NewDocumentService(params), s.GetLogger()),
		Activity:  v1.NewActivityHandler(activity, s.GetLogger()),
		User:      v1.NewUserHandler(service.NewUserService(params), s.GetLogger()),
	}

	rbacService, err := rbac.NewRBACService(s.cfg)
	s.Require().NoError(err)

	gin.SetMode(gin.TestMode)
	s.router = NewRouter(handlers, s.cfg, s.GetLogger(), auth.NewProvider(s.cfg), rbacService)
}

func (s *RouterSuite) bearer(actor types.Actor) string {
	token, err := auth.GenerateToken(s.cfg.Auth.Secret, auth.Claims{
		UserID:      actor.ID,
		Username:    actor.Username,
		Email:       actor.Email,
		IsStaff:     actor.IsStaff,
		IsSuperuser: actor.IsSuperuser,
	}, time.Hour)
	s.Require().NoError(err)
	return "Bearer " + token
}

func (s *RouterSuite) do(method, path string, actor *types.Actor, body any) (*httptest.ResponseRecorder, map[string]any) {
	var payload bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req.Header.Set(types.HeaderAuthorization, s.bearer(*actor))
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func (s *RouterSuite) TestHealth() {
	w, resp := s.do(http.MethodGet, "/health", nil, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("ok", resp["status"])
}

func (s *RouterSuite) TestRequiresToken() {
	w, resp := s.do(http.MethodGet, "/v1/dashboard/client", nil, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(false, resp["success"])
}

func (s *RouterSuite) TestAdminDashboardAccess() {
	client := testutil.ClientActor
	w, _ := s.do(http.MethodGet, "/v1/dashboard/admin", &client, nil)
	s.Equal(http.StatusForbidden, w.Code)

	admin := testutil.AdminActor
	w, resp := s.do(http.MethodGet, "/v1/dashboard/admin", &admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("admin", resp["role"])

	fields, ok := resp["fields"].(map[string]any)
	s.Require().True(ok)
	s.Len(fields, 10)
	s.Equal(float64(0), fields["total_trades"])
}

func (s *RouterSuite) TestClientDashboard() {
	client := testutil.ClientActor
	w, resp := s.do(http.MethodGet, "/v1/dashboard/client", &client, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("client", resp["role"])

	fields, ok := resp["fields"].(map[string]any)
	s.Require().True(ok)
	s.Contains(fields, "recent_shipments")
	s.Contains(fields, "user_documents")
	s.Contains(fields, "trades")
}

func (s *RouterSuite) TestActivitiesAreStaffOnly() {
	client := testutil.ClientActor
	w, _ := s.do(http.MethodGet, "/v1/activities", &client, nil)
	s.Equal(http.StatusForbidden, w.Code)

	admin := testutil.AdminActor
	w, _ = s.do(http.MethodGet, "/v1/activities", &admin, nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterSuite) TestCreateTradeWithMailFailure() {
	s.GetMailer().FailWith(errors.New("smtp unavailable"))

	client := testutil.ClientActor
	w, resp := s.do(http.MethodPost, "/v1/trades", &client, map[string]any{
		"product":    "Widget",
		"quantity":   3,
		"price":      "10.50",
		"trade_date": "2024-07-01",
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	trade, ok := resp["trade"].(map[string]any)
	s.Require().True(ok)
	s.Equal("Widget", trade["product"])
	s.NotEmpty(resp["warnings"])
	s.Equal(1, s.GetStores().TradeRepo.Len())
	s.Equal(1, s.GetStores().ActivityLogRepo.Len())
}

func (s *RouterSuite) TestCreateTradeValidation() {
	client := testutil.ClientActor

	testCases := []struct {
		name string
		body map[string]any
	}{
		{name: "zero_quantity", body: map[string]any{"product": "Widget", "quantity": 0, "price": "10.50"}},
		{name: "missing_price", body: map[string]any{"product": "Widget", "quantity": 5}},
		{name: "null_price", body: map[string]any{"product": "Widget", "quantity": 5, "price": nil}},
		{name: "price_overflow", body: map[string]any{"product": "Widget", "quantity": 5, "price": "123456789012.345"}},
		{name: "quantity_overflow", body: map[string]any{"product": "Widget", "quantity": int64(3000000000), "price": "1.00"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			w, resp := s.do(http.MethodPost, "/v1/trades", &client, tc.body)
			s.Equal(http.StatusBadRequest, w.Code)
			s.Equal(false, resp["success"])
		})
	}

	s.Equal(0, s.GetStores().TradeRepo.Len())
	s.Equal(0, s.GetStores().ActivityLogRepo.Len())
	s.Empty(s.GetMailer().Sent())
}

func (s *RouterSuite) TestShipmentLifecycle() {
	admin := testutil.AdminActor
	w, resp := s.do(http.MethodPost, "/v1/shipments", &admin, map[string]any{
		"shipment_type": "import",
		"origin":        "Mombasa",
		"destination":   "Rotterdam",
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	id, _ := resp["id"].(string)
	s.Require().NotEmpty(id)

	w, resp = s.do(http.MethodPut, "/v1/shipments/"+id, &admin, map[string]any{"status": "delivered"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("delivered", resp["status"])

	w, _ = s.do(http.MethodDelete, "/v1/shipments/"+id, &admin, nil)
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/v1/shipments/"+id, &admin, nil)
	s.Equal(http.StatusNotFound, w.Code)
}
