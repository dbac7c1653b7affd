package routes

import (
	"github.com/Kariqs/perfume-api/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(api, admin *gin.RouterGroup, c *controllers.DefaultController) {
	api.GET("/", c.GetHome)
	api.GET("/health", c.Health)
	admin.GET("/test-db", c.TestDB)
}
