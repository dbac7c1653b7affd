package routes

import (
	"github.com/Kariqs/perfume-api/controllers"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(api, admin *gin.RouterGroup, orders *controllers.OrderController) {
	api.POST("/orders", orders.CreateOrder)
	api.GET("/orders/:id", orders.GetOrder)

	admin.GET("/orders", orders.GetOrders)
	admin.PUT("/orders/:id/status", orders.UpdateOrderStatus)
	admin.GET("/dashboard/stats", orders.GetDashboardStats)
}
