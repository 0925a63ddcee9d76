package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"studio-booking/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates staff tokens minted elsewhere. Customer endpoints
// are unauthenticated; ownership there is proven by phone match.
type AuthMiddleware struct {
	tokens *jwt.Service
}

const (
	ctxStaffIDKey = "staff_id"
	ctxStaffKey   = "is_staff"
)

func NewAuthMiddleware(tokens *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

// RequireStaff guards the administrative routes.
func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		if !claims.IsStaff() {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Set(ctxStaffIDKey, claims.Subject)
		c.Set(ctxStaffKey, true)
		c.Set("jwt_claims", map[string]any{
			"staff_id": claims.Subject,
			"role":     claims.Role,
		})
		c.Next()
	}
}

// OptionalStaff authenticates the request if a valid staff token is present,
// but never aborts. Cancellation uses this: staff may cancel any reservation,
// customers only their own.
func (m *AuthMiddleware) OptionalStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil || !claims.IsStaff() {
			c.Next()
			return
		}

		c.Set(ctxStaffIDKey, claims.Subject)
		c.Set(ctxStaffKey, true)
		c.Set("jwt_claims", map[string]any{
			"staff_id": claims.Subject,
			"role":     claims.Role,
		})
		c.Next()
	}
}

func GetStaffID(c *gin.Context) (string, bool) {
	staffID, exists := c.Get(ctxStaffIDKey)
	if !exists {
		return "", false
	}

	id, ok := staffID.(string)
	return id, ok
}

func IsStaff(c *gin.Context) bool {
	v, exists := c.Get(ctxStaffKey)
	if !exists {
		return false
	}
	isStaff, ok := v.(bool)
	return ok && isStaff
}
