package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const serviceName = "Perfume Store API"

type DefaultController struct {
	db  *gorm.DB
	env string
}

func NewDefaultController(db *gorm.DB, env string) *DefaultController {
	return &DefaultController{db: db, env: env}
}

func (c *DefaultController) GetHome(ctx *gin.Context) {
	message := `Welcome to the Perfume Store API. All endpoints are served under /api.

AUTH
- POST "/auth/register" - Create an account
- POST "/auth/login" - Sign in and receive a token
- GET "/auth/profile" - Current account (token required)

PRODUCTS
- GET "/products" - List active products (page, limit)
- GET "/products/{id}" - Product details with prices per size
- POST "/products/{id}/calculate-price" - Price quote for a size and quantity

ORDERS
- POST "/orders" - Place an order
- GET "/orders/{id}" - Order with its items

ADMIN (admin token required)
- POST "/admin/products" - Create product
- PUT "/admin/products/{id}" - Update product
- DELETE "/admin/products/{id}" - Deactivate product
- POST "/admin/products/{id}/image" - Upload product image
- GET "/admin/orders" - List orders (page, limit, status)
- PUT "/admin/orders/{id}/status" - Update order status
- GET "/admin/dashboard/stats" - Dashboard statistics
- GET "/admin/test-db" - Database connectivity check

MISC
- GET "/health" - Service health`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

func (c *DefaultController) Health(ctx *gin.Context) {
	status := http.StatusOK
	database := "connected"
	if err := c.ping(ctx); err != nil {
		status = http.StatusServiceUnavailable
		database = "disconnected"
	}

	ctx.JSON(status, gin.H{
		"service":     serviceName,
		"environment": c.env,
		"timestamp":   time.Now().UTC(),
		"database":    database,
	})
}

// TestDB reports connectivity and the tables present in the schema.
func (c *DefaultController) TestDB(ctx *gin.Context) {
	if err := c.ping(ctx); err != nil {
		respondInternal(ctx, "Database connection failed", err)
		return
	}

	tables, err := c.db.WithContext(ctx.Request.Context()).Migrator().GetTables()
	if err != nil {
		respondInternal(ctx, "Failed to list tables", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Database connection successful",
		"tables":  tables,
	})
}

// NotFound answers unknown routes.
func (c *DefaultController) NotFound(ctx *gin.Context) {
	ctx.JSON(http.StatusNotFound, gin.H{
		"error":               "Route not found",
		"path":                ctx.Request.URL.Path,
		"available_endpoints": []string{"/api/auth", "/api/products", "/api/orders", "/api/admin", "/api/health"},
	})
}

func (c *DefaultController) ping(ctx *gin.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx.Request.Context())
}
