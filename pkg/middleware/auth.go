package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nouressalam/storefront/pkg/response"
	"github.com/nouressalam/storefront/pkg/token"
)

// gin context 鉴权字段键
const (
	AuthUserIDKey = "auth_user_id"
	AuthEmailKey  = "auth_email"
	AuthRoleKey   = "auth_role"
)

// AuthRequired 校验 Bearer 令牌，将用户身份写入 gin context
func AuthRequired(tm *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "missing Authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.Error(c, http.StatusUnauthorized, "invalid Authorization header format")
			c.Abort()
			return
		}

		claims, err := tm.Parse(parts[1])
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(AuthUserIDKey, claims.Subject)
		c.Set(AuthEmailKey, claims.Email)
		c.Set(AuthRoleKey, claims.Role)
		c.Next()
	}
}

// RoleRequired 限制仅指定角色可访问，需在 AuthRequired 之后使用
func RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(AuthRoleKey)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "insufficient permissions")
		c.Abort()
	}
}
