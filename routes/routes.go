package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/5h3r42/savzix-store-antigravity/checkout"
	"github.com/5h3r42/savzix-store-antigravity/config"
	"github.com/5h3r42/savzix-store-antigravity/store"
)

// Deps carries the shared service objects handed to every route group.
type Deps struct {
	DB       *gorm.DB
	Catalog  *store.Catalog
	Orders   *store.Orders
	Checkout *checkout.Service
}

// NewDeps builds the default dependency set on top of db, with the site
// config applied to checkout and placeholder imagery.
func NewDeps(db *gorm.DB, site config.Site) Deps {
	catalog := store.NewCatalog(db)
	catalog.PlaceholderImage = site.PlaceholderImage
	orders := store.NewOrders(db)

	svc := checkout.NewService(catalog, orders)
	svc.Threshold = site.ShippingThreshold
	svc.FlatRate = site.ShippingFlatRate

	return Deps{
		DB:       db,
		Catalog:  catalog,
		Orders:   orders,
		Checkout: svc,
	}
}

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// 1️⃣ Public Auth routes (no middleware)
	SetupAuthRoutes(r, deps)

	// 2️⃣ Storefront routes (public browse, JWT checkout)
	SetupStoreRoutes(r, deps)

	// 3️⃣ Admin routes (API-Key / admin-role protected)
	SetupAdminRoutes(r, deps)

	// order feed routes
	SetupOrderRoutes(r, deps)
}
