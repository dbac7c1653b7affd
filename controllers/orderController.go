package controllers

import (
	"net/http"

	"github.com/Kariqs/perfume-api/services"
	"github.com/Kariqs/perfume-api/utils"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (c *OrderController) CreateOrder(ctx *gin.Context) {
	var input services.PlaceOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondBadRequest(ctx, msgInvalidRequestBody, err)
		return
	}

	order, err := c.orders.PlaceOrder(ctx.Request.Context(), input)
	if err != nil {
		respondWithError(ctx, "Order", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order.Summary(),
	})
}

func (c *OrderController) GetOrder(ctx *gin.Context) {
	id, ok := paramID(ctx, "id", "order")
	if !ok {
		return
	}

	order, err := c.orders.GetOrder(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, "Order", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// Admin handlers

func (c *OrderController) GetOrders(ctx *gin.Context) {
	page := utils.ParsePageRequest(ctx.Query("page"), ctx.Query("limit"))

	orders, pagination, err := c.orders.ListOrders(ctx.Request.Context(), page, ctx.Query("status"))
	if err != nil {
		respondInternal(ctx, "Failed to fetch orders", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": pagination.JSON("total_orders"),
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (c *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	id, ok := paramID(ctx, "id", "order")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, msgInvalidRequestBody, err)
		return
	}

	order, err := c.orders.UpdateStatus(ctx.Request.Context(), id, req.Status)
	if err != nil {
		respondWithError(ctx, "Order", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"order":   order,
	})
}

func (c *OrderController) GetDashboardStats(ctx *gin.Context) {
	stats, err := c.orders.DashboardStats(ctx.Request.Context())
	if err != nil {
		respondInternal(ctx, "Failed to fetch dashboard stats", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"stats": stats})
}
