package controllers

import (
	"net/http"

	"github.com/Kariqs/perfume-api/services"
	"github.com/Kariqs/perfume-api/utils"
	"github.com/gin-gonic/gin"
)

// Largest accepted product image upload.
const maxImageSize = 5 << 20

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

func (c *ProductController) GetProducts(ctx *gin.Context) {
	page := utils.ParsePageRequest(ctx.Query("page"), ctx.Query("limit"))

	products, pagination, err := c.products.ListActive(ctx.Request.Context(), page)
	if err != nil {
		respondInternal(ctx, "Failed to fetch products", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"products":   products,
		"pagination": pagination.JSON("total_products"),
	})
}

func (c *ProductController) GetProduct(ctx *gin.Context) {
	id, ok := paramID(ctx, "id", "product")
	if !ok {
		return
	}

	product, err := c.products.GetActive(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, "Product", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"product": product,
		"prices":  services.SizePrices(product),
	})
}

type calculatePriceRequest struct {
	Size     string `json:"size"`
	Quantity *int   `json:"quantity"`
}

func (c *ProductController) CalculatePrice(ctx *gin.Context) {
	id, ok := paramID(ctx, "id", "product")
	if !ok {
		return
	}

	var req calculatePriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, msgInvalidRequestBody, err)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	quote, err := c.products.Quote(ctx.Request.Context(), id, req.Size, quantity)
	if err != nil {
		respondWithError(ctx, "Product", err)
		return
	}

	ctx.JSON(http.StatusOK, quote)
}

// Admin handlers

func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var input services.CreateProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondBadRequest(ctx, msgInvalidRequestBody, err)
		return
	}

	product, err := c.products.Create(ctx.Request.Context(), input)
	if err != nil {
		respondWithError(ctx, "Product", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	id, ok := paramID(ctx, "id", "product")
	if !ok {
		return
	}

	var input services.UpdateProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondBadRequest(ctx, msgInvalidRequestBody, err)
		return
	}

	product, err := c.products.Update(ctx.Request.Context(), id, input)
	if err != nil {
		respondWithError(ctx, "Product", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct deactivates the product; the row is kept.
func (c *ProductController) DeleteProduct(ctx *gin.Context) {
	id, ok := paramID(ctx, "id", "product")
	if !ok {
		return
	}

	if err := c.products.Deactivate(ctx.Request.Context(), id); err != nil {
		respondWithError(ctx, "Product", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (c *ProductController) UploadProductImage(ctx *gin.Context) {
	id, ok := paramID(ctx, "id", "product")
	if !ok {
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		respondBadRequest(ctx, "No image uploaded", err)
		return
	}
	if file.Size > maxImageSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Image must be 5MB or smaller"})
		return
	}

	f, err := file.Open()
	if err != nil {
		respondInternal(ctx, "Failed to read image", err)
		return
	}
	defer f.Close()

	product, err := c.products.AttachImage(ctx.Request.Context(), id, file.Filename, f, file.Header.Get("Content-Type"))
	if err != nil {
		respondWithError(ctx, "Product", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Image uploaded successfully",
		"product": product,
	})
}
