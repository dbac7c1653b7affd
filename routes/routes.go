package routes

import (
	"github.com/Kariqs/perfume-api/controllers"
	"github.com/Kariqs/perfume-api/middlewares"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the controllers and the token verifier the routes need.
type Handlers struct {
	Auth     *controllers.AuthController
	Products *controllers.ProductController
	Orders   *controllers.OrderController
	Default  *controllers.DefaultController
	Tokens   middlewares.TokenParser
}

// Setup mounts every route under /api.
func Setup(server *gin.Engine, h Handlers) {
	api := server.Group("/api")
	admin := api.Group("/admin", middlewares.RequireAuth(h.Tokens), middlewares.RequireAdmin())

	DefaultRoutes(api, admin, h.Default)
	AuthRoutes(api, h.Auth, h.Tokens)
	ProductRoutes(api, admin, h.Products)
	OrderRoutes(api, admin, h.Orders)

	server.NoRoute(h.Default.NotFound)
}
