package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/5h3r42/savzix-store-antigravity/store"
)

// GetProductBySlug returns a single product.
// URL param: /products/:slug
func GetProductBySlug(catalog *store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		if slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product slug is required"})
			return
		}

		product, err := catalog.GetBySlug(slug)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}
		if product == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
