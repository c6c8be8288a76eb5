package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitekhata/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when access is denied (optional)
	OnDenied func(c *gin.Context, requiredRoles []identity.Role)
}

// RequireRole creates middleware that requires one of the specified roles
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return RequireRoleWithConfig(RoleConfig{}, roles...)
}

// RequireRoleWithConfig creates role middleware with custom config
func RequireRoleWithConfig(cfg RoleConfig, roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleRoleDenied(c, cfg, roles, "No authentication claims found")
			return
		}

		userRole := identity.Role(claims.Role)
		for _, role := range roles {
			if userRole == role {
				if cfg.Logger != nil {
					cfg.Logger.Debug("Role check passed",
						zap.String("user_id", claims.UserID),
						zap.String("role", claims.Role),
					)
				}
				c.Next()
				return
			}
		}

		handleRoleDenied(c, cfg, roles, "User role not permitted")
	}
}

// RequireAdmin creates middleware that only admits administrators
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(identity.RoleAdmin)
}

// RequireWriter creates middleware that rejects read-only roles. Viewers
// can list and fetch but never mutate.
func RequireWriter() gin.HandlerFunc {
	return RequireWriterWithConfig(RoleConfig{})
}

// RequireWriterWithConfig creates write-guard middleware with custom config
func RequireWriterWithConfig(cfg RoleConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleRoleDenied(c, cfg, nil, "No authentication claims found")
			return
		}

		if !identity.Role(claims.Role).CanWrite() {
			handleRoleDenied(c, cfg, []identity.Role{identity.RoleAdmin, identity.RoleOperator}, "Read-only role cannot mutate")
			return
		}

		c.Next()
	}
}

// GetRole returns the authenticated user's role, or empty when anonymous
func GetRole(c *gin.Context) identity.Role {
	return identity.Role(GetJWTRole(c))
}

// handleRoleDenied handles access denied scenarios
func handleRoleDenied(c *gin.Context, cfg RoleConfig, requiredRoles []identity.Role, reason string) {
	if cfg.OnDenied != nil {
		cfg.OnDenied(c, requiredRoles)
		return
	}

	if cfg.Logger != nil {
		claims := GetJWTClaims(c)
		userID := ""
		userRole := ""
		if claims != nil {
			userID = claims.UserID
			userRole = claims.Role
		}

		required := make([]string, len(requiredRoles))
		for i, r := range requiredRoles {
			required[i] = string(r)
		}

		cfg.Logger.Warn("Access denied",
			zap.String("reason", reason),
			zap.String("user_id", userID),
			zap.String("user_role", userRole),
			zap.Strings("required_roles", required),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_FORBIDDEN",
			"message": "Access denied: insufficient permissions",
		},
	})
}
