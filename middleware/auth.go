package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/5h3r42/savzix-store-antigravity/models"
)

// Context keys set by ValidateToken.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// ValidateToken checks the Authorization bearer token and puts the session
// identity into the gin context.
func ValidateToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		c.Abort()
		return
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		c.Abort()
		return
	}
	role, _ := claims["role"].(string)

	c.Set(ContextUserID, userID)
	c.Set(ContextRole, role)
	c.Next()
}

// RequireAdmin allows admins through on either credential: an admin-role
// session token or the backoffice API key.
func RequireAdmin(c *gin.Context) {
	if HasAdminKey(c) {
		c.Next()
		return
	}
	if role, _ := c.Get(ContextRole); role == models.RoleAdmin {
		c.Next()
		return
	}
	c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
	c.Abort()
}

// SessionUserID returns the authenticated user id, empty when anonymous.
func SessionUserID(c *gin.Context) string {
	userID, _ := c.Get(ContextUserID)
	id, _ := userID.(string)
	return id
}
