package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/5h3r42/savzix-store-antigravity/httperr"
	"github.com/5h3r42/savzix-store-antigravity/middleware"
	"github.com/5h3r42/savzix-store-antigravity/models"
	"github.com/5h3r42/savzix-store-antigravity/store"
)

// GetAllProducts returns the storefront listing: Active products with stock,
// newest first. With ?scope=all and admin credentials the full catalogue
// comes back, drafts and all.
func GetAllProducts(catalog *store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			products []models.Product
			err      error
		)
		if c.Query("scope") == "all" && middleware.HasAdminKey(c) {
			products, err = catalog.ListAll()
		} else {
			products, err = catalog.ListActive()
		}
		if err != nil {
			c.JSON(httperr.Status(err), gin.H{"error": "Failed to retrieve products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
