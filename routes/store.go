package routes

import (
	"github.com/gin-gonic/gin"

	checkoutcontroller "github.com/5h3r42/savzix-store-antigravity/controllers/checkout"
	orderControllers "github.com/5h3r42/savzix-store-antigravity/controllers/order"
	productcontroller "github.com/5h3r42/savzix-store-antigravity/controllers/product"
	"github.com/5h3r42/savzix-store-antigravity/middleware"
)

// SetupStoreRoutes registers the storefront surface: public browsing plus
// the JWT-protected checkout and order history.
func SetupStoreRoutes(r *gin.Engine, deps Deps) {
	// ──────────────── Browse Products ────────────────
	r.GET("/products", productcontroller.GetAllProducts(deps.Catalog))         // GET /products
	r.GET("/products/:slug", productcontroller.GetProductBySlug(deps.Catalog)) // GET /products/:slug

	// ──────────────── Checkout + Order History ────────────────
	sessionGroup := r.Group("/")
	sessionGroup.Use(middleware.ValidateToken)
	{
		sessionGroup.POST("/checkout", checkoutcontroller.PlaceOrder(
			deps.Checkout, orderControllers.BroadcastNewOrder(deps.Orders))) // POST /checkout
		sessionGroup.GET("/orders/user", orderControllers.GetUserOrders(deps.Orders)) // GET /orders/user
	}
}
