package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/5h3r42/savzix-store-antigravity/models"
)

// GetAllCustomers lists every registered user for the backoffice.
func GetAllCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve customers"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}
