package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/logiport/portal/internal/auth"
	"github.com/logiport/portal/internal/config"
	ierr "github.com/logiport/portal/internal/errors"
	"github.com/logiport/portal/internal/logger"
	"github.com/logiport/portal/internal/rbac"
	"github.com/logiport/portal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const testSecret = "middleware-secret"

type MiddlewareSuite struct {
	suite.Suite
	cfg    *config.Configuration
	router *gin.Engine
}

func TestMiddleware(t *testing.T) {
	suite.Run(t, new(MiddlewareSuite))
}

func (s *MiddlewareSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.cfg = &config.Configuration{Auth: config.AuthConfig{Secret: testSecret}}
}

func (s *MiddlewareSuite) SetupTest() {
	log := logger.NewNopLogger()
	rbacService, err := rbac.NewRBACService(s.cfg)
	s.Require().NoError(err)
	pm := NewPermissionMiddleware(rbacService, log)

	s.router = gin.New()
	s.router.Use(RequestIDMiddleware, ErrorHandler(log))

	s.router.GET("/public/fail", func(c *gin.Context) {
		_ = c.Error(ierr.NewError("shipment ship_1 not found").
			WithHint("Shipment not found").
			WithReportableDetails(map[string]any{"shipment_id": "ship_1"}).
			Mark(ierr.ErrNotFound))
	})
	s.router.GET("/public/plain", func(c *gin.Context) {
		_ = c.Error(ierr.NewError("boom").Error())
	})

	private := s.router.Group("/private", AuthenticateMiddleware(auth.NewProvider(s.cfg), log))
	private.GET("/me", func(c *gin.Context) {
		actor, _ := types.GetActor(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role()})
	})
	private.GET("/admin", pm.RequirePermission(rbac.EntityDashboard, rbac.ActionReadAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

func (s *MiddlewareSuite) token(claims auth.Claims) string {
	token, err := auth.GenerateToken(testSecret, claims, time.Hour)
	s.Require().NoError(err)
	return token
}

func (s *MiddlewareSuite) do(path, authorization string) (*httptest.ResponseRecorder, ierr.ErrorResponse) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set(types.HeaderAuthorization, authorization)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp ierr.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func (s *MiddlewareSuite) TestAuthenticate() {
	testCases := []struct {
		name          string
		authorization string
		wantStatus    int
		wantMessage   string
	}{
		{
			name:        "missing_header",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Authentication is required",
		},
		{
			name:          "not_bearer",
			authorization: "Basic dXNlcjpwYXNz",
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   "Invalid authorization header format",
		},
		{
			name:          "invalid_token",
			authorization: "Bearer not-a-token",
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   "Invalid token",
		},
		{
			name:          "valid_token",
			authorization: "Bearer " + s.token(auth.Claims{UserID: "user_1", Username: "alice"}),
			wantStatus:    http.StatusOK,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			w, resp := s.do("/private/me", tc.authorization)
			s.Equal(tc.wantStatus, w.Code)
			if tc.wantMessage != "" {
				s.False(resp.Success)
				s.Equal(tc.wantMessage, resp.Error.Display)
			}
		})
	}
}

func (s *MiddlewareSuite) TestAuthenticateSetsActor() {
	w, _ := s.do("/private/me", "Bearer "+s.token(auth.Claims{UserID: "user_1", IsStaff: true}))
	s.Require().Equal(http.StatusOK, w.Code)

	var body map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("user_1", body["id"])
	s.Equal("admin", body["role"])
	s.NotEmpty(w.Header().Get(types.HeaderRequestID))
}

func (s *MiddlewareSuite) TestRequirePermission() {
	w, resp := s.do("/private/admin", "Bearer "+s.token(auth.Claims{UserID: "user_client"}))
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("Insufficient permissions to read_admin dashboard", resp.Error.Display)

	w, _ = s.do("/private/admin", "Bearer "+s.token(auth.Claims{UserID: "user_admin", IsSuperuser: true}))
	s.Equal(http.StatusOK, w.Code)
}

func (s *MiddlewareSuite) TestErrorHandler() {
	w, resp := s.do("/public/fail", "")
	s.Equal(http.StatusNotFound, w.Code)
	s.False(resp.Success)
	s.Equal("Shipment not found", resp.Error.Display)
	s.Equal("ship_1", resp.Error.Details["shipment_id"])

	w, resp = s.do("/public/plain", "")
	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("An unexpected error occurred", resp.Error.Display)
}

func (s *MiddlewareSuite) TestErrorCarriesRequestID() {
	req := httptest.NewRequest(http.MethodGet, "/public/fail", nil)
	req.Header.Set(types.HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp ierr.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("req-123", resp.Error.RequestID)
	s.Equal("req-123", w.Header().Get(types.HeaderRequestID))
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name       string
		origins    []string
		origin     string
		wantOrigin string
	}{
		{name: "any_origin", origins: nil, origin: "https://app.example.com", wantOrigin: "*"},
		{name: "listed_origin", origins: []string{"https://app.example.com"}, origin: "https://app.example.com", wantOrigin: "https://app.example.com"},
		{name: "unlisted_origin", origins: []string{"https://app.example.com"}, origin: "https://evil.example.com", wantOrigin: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORSMiddleware(&config.Configuration{Server: config.ServerConfig{AllowedOrigins: tc.origins}}))
			router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
			req.Header.Set("Origin", tc.origin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Equal(t, tc.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
