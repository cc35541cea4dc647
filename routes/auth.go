package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/5h3r42/savzix-store-antigravity/auth"
)

// SetupAuthRoutes registers the public login endpoint.
func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", auth.LoginHandler(deps.DB)) // POST /auth/login
	}
}
