package routes

import (
	"github.com/Kariqs/perfume-api/controllers"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(api, admin *gin.RouterGroup, products *controllers.ProductController) {
	api.GET("/products", products.GetProducts)
	api.GET("/products/:id", products.GetProduct)
	api.POST("/products/:id/calculate-price", products.CalculatePrice)

	admin.POST("/products", products.CreateProduct)
	admin.PUT("/products/:id", products.UpdateProduct)
	admin.DELETE("/products/:id", products.DeleteProduct)
	admin.POST("/products/:id/image", products.UploadProductImage)
}
