package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/5h3r42/savzix-store-antigravity/store"
)

// AdminListProducts is the backoffice listing with search and price filters.
// Query params: search, category, min_price, max_price.
func AdminListProducts(catalog *store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := store.ProductFilter{
			Search:   c.Query("search"),
			Category: c.Query("category"),
		}
		if raw := c.Query("min_price"); raw != "" {
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
			filter.MinPrice = &value
		}
		if raw := c.Query("max_price"); raw != "" {
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
			filter.MaxPrice = &value
		}

		products, err := catalog.ListFiltered(filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
