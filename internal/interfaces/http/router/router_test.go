package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sitekhata/backend/internal/infrastructure/auth"
	"github.com/sitekhata/backend/internal/infrastructure/config"
	"github.com/sitekhata/backend/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "sitekhata", Env: "test", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:                 "test-access-secret-0123456789abcdef",
			RefreshSecret:          "test-refresh-secret-0123456789abcde",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 7 * 24 * time.Hour,
			Issuer:                 "sitekhata-test",
			MaxRefreshCount:        10,
		},
		HTTP: config.HTTPConfig{
			MaxBodySize:      25 << 20,
			CORSAllowOrigins: []string{"http://localhost:3000"},
		},
	}
}

// testHandlers returns handlers with nil services. Route registration and
// middleware guards never reach the service layer, which is all these
// tests exercise.
func testHandlers() Handlers {
	return Handlers{
		System:         handler.NewSystemHandler(nil),
		Auth:           handler.NewAuthHandler(nil),
		User:           handler.NewUserHandler(nil),
		Vendor:         handler.NewVendorHandler(nil),
		Item:           handler.NewItemHandler(nil),
		Entry:          handler.NewLedgerEntryHandler(nil),
		Payment:        handler.NewPaymentHandler(nil, nil),
		Reconciliation: handler.NewReconciliationHandler(nil),
		Report:         handler.NewReportHandler(nil),
		WorkLog:        handler.NewWorkLogHandler(nil),
		Import:         handler.NewImportHandler(nil),
	}
}

func newTestEngine(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	cfg := testConfig()
	jwtService := auth.NewJWTService(cfg.JWT)
	return Setup(cfg, zap.NewNop(), jwtService, testHandlers()), jwtService
}

func bearerToken(t *testing.T, jwtService *auth.JWTService, role string) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "routetest",
		Role:     role,
	})
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func TestSetup_RegistersRoutes(t *testing.T) {
	engine, _ := newTestEngine(t)

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /health",
		"GET /ping",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/refresh",
		"PUT /api/v1/auth/password",
		"GET /api/v1/auth/me",
		"POST /api/v1/users",
		"GET /api/v1/users",
		"POST /api/v1/users/:id/reset-password",
		"POST /api/v1/users/:id/deactivate",
		"POST /api/v1/users/:id/activate",
		"GET /api/v1/vendors",
		"POST /api/v1/vendors",
		"PUT /api/v1/vendors/:id",
		"DELETE /api/v1/vendors/:id",
		"GET /api/v1/items",
		"POST /api/v1/items",
		"GET /api/v1/entries",
		"POST /api/v1/entries",
		"PUT /api/v1/entries/:id",
		"GET /api/v1/payments",
		"POST /api/v1/payments",
		"GET /api/v1/payments/:id/allocations",
		"GET /api/v1/payments/:id/allocations/preview",
		"POST /api/v1/payments/:id/allocations",
		"POST /api/v1/reconciliation/run",
		"GET /api/v1/reports/summary",
		"GET /api/v1/reports/vendor-ledger",
		"GET /api/v1/reports/vendor-ledger/:id",
		"GET /api/v1/reports/expenses/date-wise",
		"GET /api/v1/reports/expenses/item-wise",
		"GET /api/v1/reports/expenses/monthly",
		"GET /api/v1/reports/dashboard",
		"GET /api/v1/worklogs",
		"POST /api/v1/worklogs",
		"POST /api/v1/worklogs/:id/media/upload-url",
		"POST /api/v1/worklogs/:id/media",
		"DELETE /api/v1/worklogs/:id/media/:mediaID",
		"POST /api/v1/import/ledger",
	}
	for _, want := range expected {
		assert.True(t, registered[want], "route %s should be registered", want)
	}
}

func TestSetup_PingSkipsAuth(t *testing.T) {
	engine, _ := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pong")
}

func TestSetup_LoginSkipsAuth(t *testing.T) {
	engine, _ := newTestEngine(t)

	// Empty body fails request binding, but the request must get past
	// the JWT middleware without a token.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetup_ProtectedRoutesRequireAuth(t *testing.T) {
	engine, _ := newTestEngine(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/vendors"},
		{http.MethodGet, "/api/v1/payments"},
		{http.MethodGet, "/api/v1/reports/summary"},
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodPost, "/api/v1/import/ledger"},
	}

	for _, tt := range paths {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s should require a token", tt.method, tt.path)
	}
}

func TestSetup_ViewerCannotWrite(t *testing.T) {
	engine, jwtService := newTestEngine(t)
	token := bearerToken(t, jwtService, "VIEWER")

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/vendors"},
		{http.MethodPost, "/api/v1/items"},
		{http.MethodPost, "/api/v1/entries"},
		{http.MethodPost, "/api/v1/payments"},
		{http.MethodPost, "/api/v1/worklogs"},
		{http.MethodPost, "/api/v1/import/ledger"},
	}

	for _, tt := range paths {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		req.Header.Set("Authorization", token)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s should reject viewers", tt.method, tt.path)
	}
}

func TestSetup_UserRoutesAreAdminOnly(t *testing.T) {
	engine, jwtService := newTestEngine(t)

	for _, role := range []string{"OPERATOR", "VIEWER"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		req.Header.Set("Authorization", bearerToken(t, jwtService, role))
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code, "role %s must not reach user management", role)
	}
}

func TestSetup_ReconciliationIsAdminOnly(t *testing.T) {
	engine, jwtService := newTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reconciliation/run", nil)
	req.Header.Set("Authorization", bearerToken(t, jwtService, "OPERATOR"))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSetup_SetsRequestID(t *testing.T) {
	engine, _ := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestSetup_SetsSecurityHeaders(t *testing.T) {
	engine, _ := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestCORSConfig_UsesConfiguredOrigins(t *testing.T) {
	cfg := testConfig()
	corsCfg := corsConfig(cfg)

	assert.Equal(t, []string{"http://localhost:3000"}, corsCfg.AllowOrigins)
	// Methods and headers fall back to defaults when unset.
	assert.NotEmpty(t, corsCfg.AllowMethods)
	assert.NotEmpty(t, corsCfg.AllowHeaders)
}
