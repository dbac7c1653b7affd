package routes

import (
	"github.com/Kariqs/perfume-api/controllers"
	"github.com/Kariqs/perfume-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(api *gin.RouterGroup, auth *controllers.AuthController, tokens middlewares.TokenParser) {
	group := api.Group("/auth")
	{
		group.POST("/register", auth.Register)
		group.POST("/login", auth.Login)
		group.GET("/profile", middlewares.RequireAuth(tokens), auth.Profile)
	}
}
