package auth

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/5h3r42/savzix-store-antigravity/httperr"
	"github.com/5h3r42/savzix-store-antigravity/models"
)

// LoginHandler exchanges a provider ID token for an app session token.
// First login creates the user record; later logins refresh the profile.
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDToken string `json:"idToken"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.IDToken == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		token, err := verifyIDToken(c.Request.Context(), req.IDToken)
		if err != nil {
			c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
			return
		}

		email, _ := token.Claims["email"].(string)
		if email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email not found in token"})
			return
		}
		name, _ := token.Claims["name"].(string)
		picture, _ := token.Claims["picture"].(string)

		var user models.User
		err = db.Where("id = ?", token.UID).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{
				ID:      token.UID,
				Email:   email,
				Name:    name,
				Picture: picture,
				Role:    roleForEmail(email),
			}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		default:
			if err := db.Model(&user).Updates(models.User{Name: name, Picture: picture}).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
				return
			}
		}

		signed, err := IssueJWT(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   signed,
			"user":    user,
		})
	}
}

// roleForEmail bootstraps admins from the ADMIN_EMAILS allow-list; everyone
// else starts as a customer.
func roleForEmail(email string) string {
	for _, admin := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		if admin != "" && strings.EqualFold(strings.TrimSpace(admin), email) {
			return models.RoleAdmin
		}
	}
	return models.RoleCustomer
}
