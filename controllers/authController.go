package controllers

import (
	"net/http"

	"github.com/Kariqs/perfume-api/middlewares"
	"github.com/Kariqs/perfume-api/services"
	"github.com/gin-gonic/gin"
)

const msgUserCreated = "User registered successfully"

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register handles account creation
func (c *AuthController) Register(ctx *gin.Context) {
	var creds services.Credentials
	if err := ctx.ShouldBindJSON(&creds); err != nil {
		respondBadRequest(ctx, msgInvalidRequestBody, err)
		return
	}

	user, token, err := c.auth.Register(ctx.Request.Context(), creds)
	if err != nil {
		respondWithError(ctx, "User", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": msgUserCreated,
		"token":   token,
		"user":    user,
	})
}

// Login handles user authentication
func (c *AuthController) Login(ctx *gin.Context) {
	var creds services.Credentials
	if err := ctx.ShouldBindJSON(&creds); err != nil {
		respondBadRequest(ctx, msgInvalidRequestBody, err)
		return
	}

	user, token, err := c.auth.Login(ctx.Request.Context(), creds)
	if err != nil {
		respondWithError(ctx, "User", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (c *AuthController) Profile(ctx *gin.Context) {
	claims, ok := middlewares.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}

	user, err := c.auth.Profile(ctx.Request.Context(), claims.ID)
	if err != nil {
		respondWithError(ctx, "User", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}
