package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/domain/identity"
	"github.com/sitekhata/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
)

// issueToken generates an access token for the given role and returns the
// Bearer header value.
func issueToken(t *testing.T, jwtService *auth.JWTService, role identity.Role) string {
	t.Helper()

	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "testuser",
		Role:     string(role),
	})
	if err != nil {
		t.Fatalf("generate token pair: %v", err)
	}
	return "Bearer " + pair.AccessToken
}

func newRoleTestRouter(jwtService *auth.JWTService, guard gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.POST("/guarded", guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestRequireRole_Allowed(t *testing.T) {
	jwtService := newTestJWTService()
	router := newRoleTestRouter(jwtService, RequireRole(identity.RoleAdmin))

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	req.Header.Set("Authorization", issueToken(t, jwtService, identity.RoleAdmin))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_Denied(t *testing.T) {
	jwtService := newTestJWTService()
	router := newRoleTestRouter(jwtService, RequireRole(identity.RoleAdmin))

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	req.Header.Set("Authorization", issueToken(t, jwtService, identity.RoleOperator))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_FORBIDDEN")
}

func TestRequireRole_MultipleRoles(t *testing.T) {
	jwtService := newTestJWTService()
	router := newRoleTestRouter(jwtService, RequireRole(identity.RoleAdmin, identity.RoleOperator))

	for _, role := range []identity.Role{identity.RoleAdmin, identity.RoleOperator} {
		req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
		req.Header.Set("Authorization", issueToken(t, jwtService, role))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "role %s should be allowed", role)
	}
}

func TestRequireRole_NoClaims(t *testing.T) {
	router := gin.New()
	router.POST("/guarded", RequireRole(identity.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	jwtService := newTestJWTService()
	router := newRoleTestRouter(jwtService, RequireAdmin())

	tests := []struct {
		role     identity.Role
		expected int
	}{
		{identity.RoleAdmin, http.StatusOK},
		{identity.RoleOperator, http.StatusForbidden},
		{identity.RoleViewer, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
			req.Header.Set("Authorization", issueToken(t, jwtService, tt.role))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestRequireWriter(t *testing.T) {
	jwtService := newTestJWTService()
	router := newRoleTestRouter(jwtService, RequireWriter())

	tests := []struct {
		role     identity.Role
		expected int
	}{
		{identity.RoleAdmin, http.StatusOK},
		{identity.RoleOperator, http.StatusOK},
		{identity.RoleViewer, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
			req.Header.Set("Authorization", issueToken(t, jwtService, tt.role))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestRequireWriter_NoClaims(t *testing.T) {
	router := gin.New()
	router.POST("/guarded", RequireWriter(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_CustomOnDenied(t *testing.T) {
	jwtService := newTestJWTService()

	deniedCalled := false
	guard := RequireRoleWithConfig(RoleConfig{
		OnDenied: func(c *gin.Context, requiredRoles []identity.Role) {
			deniedCalled = true
			c.AbortWithStatusJSON(http.StatusTeapot, gin.H{"custom": "denied"})
		},
	}, identity.RoleAdmin)

	router := newRoleTestRouter(jwtService, guard)

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	req.Header.Set("Authorization", issueToken(t, jwtService, identity.RoleViewer))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.True(t, deniedCalled)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestGetRole(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, identity.Role(""), GetRole(c))

	c.Set(JWTRoleKey, "VIEWER")
	assert.Equal(t, identity.RoleViewer, GetRole(c))
}
