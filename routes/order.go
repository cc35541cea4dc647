package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/5h3r42/savzix-store-antigravity/controllers/order"
	"github.com/5h3r42/savzix-store-antigravity/middleware"
)

// SetupOrderRoutes registers the backoffice live order feed.
func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	orderGroup := r.Group("/orders")
	{
		// Browsers cannot set custom headers on a websocket dial, so the
		// key rides in the query string.
		orderGroup.GET("/ws", func(c *gin.Context) {
			if c.Query("api_key") != "" {
				c.Request.Header.Set("X-API-KEY", c.Query("api_key"))
			}
			middleware.ValidateAPIKey(c)
			if c.IsAborted() {
				return
			}
			orderControllers.OrderWebSocketHandler(c)
		})
	}
}
