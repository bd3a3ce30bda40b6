package middleware

import (
	"net/http"
	"strings"

	"agencyhub-service/internal/pkg/jwt"
	"agencyhub-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	verifier *jwt.Verifier
}

func NewAuthMiddleware(verifier *jwt.Verifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// Auth validates the bearer token and stores the caller identity on the
// request context.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", nil)
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", err)
			return
		}

		c.Set("identity_id", claims.IdentityID())
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("roles", claims.Roles)

		c.Next()
	}
}

// RequireRole requires the caller to hold at least one of the given roles.
// MUST be used after Auth().
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoles := GetRoles(c)
		if len(userRoles) == 0 {
			response.Error(c, http.StatusForbidden, "no roles found - authentication required", nil)
			return
		}

		for _, userRole := range userRoles {
			for _, required := range roles {
				if userRole == required {
					c.Next()
					return
				}
			}
		}

		response.Error(c, http.StatusForbidden, "insufficient role", nil)
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}
