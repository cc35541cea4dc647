package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/5h3r42/savzix-store-antigravity/controllers/order"
	productcontroller "github.com/5h3r42/savzix-store-antigravity/controllers/product"
	userControllers "github.com/5h3r42/savzix-store-antigravity/controllers/user"
	"github.com/5h3r42/savzix-store-antigravity/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key
// middleware.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(deps.Catalog))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(deps.Catalog))
			productAdmin.GET("", productcontroller.AdminListProducts(deps.Catalog))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrders(deps.Orders))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatus(deps.Orders))
		}

		// ─────────── Customer Management ───────────
		adminGroup.GET("/customers", userControllers.GetAllCustomers(deps.DB))
	}
}
