package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"venuehub-api/internal/domain/identity"
	"venuehub-api/internal/handler/httperr"
	"venuehub-api/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const ctxPrincipalKey = "principal"

var (
	errTokenRequired = errors.New("access token required")
	errForbidden     = errors.New("insufficient permissions")
	errNoPrincipal   = errors.New("principal missing from context")
)

type AuthMiddleware struct {
	tokens *jwt.Service
}

func NewAuthMiddleware(tokens *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenRequired,
				"UNAUTHORIZED", "Access token required")
			return
		}

		principal, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("token validation failed", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err,
				"UNAUTHORIZED", "Invalid or expired token")
			return
		}

		c.Set(ctxPrincipalKey, principal)
		c.Set("jwt_claims", map[string]any{
			"user_id": principal.ID.String(),
			"role":    principal.Role.String(),
		})
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errNoPrincipal,
				"INTERNAL_ERROR", "Internal server error")
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		httperr.AbortWithError(c, http.StatusForbidden, errForbidden,
			"FORBIDDEN", "Insufficient permissions")
	}
}

func GetPrincipal(c *gin.Context) (identity.Principal, bool) {
	value, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return identity.Principal{}, false
	}

	principal, ok := value.(identity.Principal)
	return principal, ok
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}
