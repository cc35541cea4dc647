package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/5h3r42/savzix-store-antigravity/httperr"
	"github.com/5h3r42/savzix-store-antigravity/models"
	"github.com/5h3r42/savzix-store-antigravity/store"
)

// CreateProduct handles the admin create endpoint. The store allocates the
// product ID and a unique slug.
func CreateProduct(catalog *store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		product, err := catalog.Create(input)
		if err != nil {
			c.JSON(httperr.Status(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
