package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/elearning-service/internal/auth"
	"github.com/coursehub/elearning-service/internal/models"
)

// JWTAuthMiddleware authenticates requests with locally issued tokens.
type JWTAuthMiddleware struct {
	issuer *auth.TokenIssuer
}

func NewJWTAuthMiddleware(issuer *auth.TokenIssuer) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{issuer: issuer}
}

// AuthMiddleware rejects requests without a valid Bearer token. The
// 401 message distinguishes missing, malformed, expired and invalid
// tokens; claims are trusted for the rest of the request.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "authorization header missing",
			})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := m.issuer.Verify(tokenParts[1])
		if err != nil {
			message := "invalid token"
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				message = "token expired"
			case errors.Is(err, auth.ErrTokenMalformed):
				message = "malformed token"
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": message,
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}

// OptionalAuthMiddleware attaches user info when a valid token is
// present and continues anonymously otherwise.
func (m *JWTAuthMiddleware) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			c.Next()
			return
		}

		if claims, err := m.issuer.Verify(tokenParts[1]); err == nil {
			c.Set("user_id", claims.UserID)
			c.Set("user_role", claims.Role)
		}

		c.Next()
	}
}

// RequireRoleMiddleware checks if the user has one of the required
// roles. Must run after AuthMiddleware.
func (m *JWTAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		// No identity in context means the caller was never
		// authenticated, which is 401, not 403.
		role, ok := currentUserRole(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "authentication required",
			})
			c.Abort()
			return
		}

		for _, requiredRole := range requiredRoles {
			if role == requiredRole {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "insufficient permissions",
		})
		c.Abort()
	}
}
