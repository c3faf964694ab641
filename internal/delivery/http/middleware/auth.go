package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in platform-issued JWTs.
const (
	RoleCoach  = "coach"
	RoleAdmin  = "admin"
	RoleSystem = "system"
)

// Claims are issued by the platform's auth layer. Onboarded means the
// coach has completed the school-association flow.
type Claims struct {
	UserID    int    `json:"uid"`
	Role      string `json:"role"`
	Onboarded bool   `json:"onboarded"`
	jwt.RegisteredClaims
}

type AuthMiddleware struct {
	secret string
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: secret}
}

func (m *AuthMiddleware) parseToken(c *gin.Context) (*Claims, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}

// RequireOnboardedCoach guards the coach-facing search endpoints.
func (m *AuthMiddleware) RequireOnboardedCoach() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.parseToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if claims.Role != RoleCoach || !claims.Onboarded {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "onboarded coach account required"})
			return
		}
		c.Set("coach_id", claims.UserID)
		c.Next()
	}
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.parseToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if claims.Role != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// RequireSystem admits the internal post-profile-edit hook as well as
// admins poking it manually.
func (m *AuthMiddleware) RequireSystem() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.parseToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if claims.Role != RoleSystem && claims.Role != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "system access required"})
			return
		}
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
