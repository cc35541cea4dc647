package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// HasAdminKey reports whether the request carries the backoffice API key.
// A blank ADMIN_API_KEY never matches.
func HasAdminKey(c *gin.Context) bool {
	key := os.Getenv("ADMIN_API_KEY")
	return key != "" && c.GetHeader("X-API-KEY") == key
}

// ValidateAPIKey hard-gates batch and backoffice endpoints on the API key
// alone, no session required.
func ValidateAPIKey(c *gin.Context) {
	if !HasAdminKey(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
		c.Abort()
		return
	}
	c.Next()
}
