package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Kariqs/perfume-api/services"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInternalError      = "Internal server error"
)

// respondWithError maps a service error to a status code and JSON body.
// resource names the entity used for 404 messages, e.g. "Order".
func respondWithError(ctx *gin.Context, resource string, err error) {
	var validationErr *services.ValidationError
	var productErr *services.ProductNotFoundError

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"fields": validationErr.Fields,
		})
	case errors.As(err, &productErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": productErr.Error()})
	case errors.Is(err, services.ErrInvalidSize),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrUserExists):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	case errors.Is(err, services.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrImageStorageDisabled):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		respondInternal(ctx, msgInternalError, err)
	}
}

// respondInternal logs err and answers 500. The error text is only exposed
// outside release mode.
func respondInternal(ctx *gin.Context, message string, err error) {
	slog.Error(message, "method", ctx.Request.Method, "path", ctx.Request.URL.Path, "err", err)

	body := gin.H{"error": message}
	if gin.Mode() != gin.ReleaseMode && err != nil {
		body["details"] = err.Error()
	}
	ctx.JSON(http.StatusInternalServerError, body)
}

func respondBadRequest(ctx *gin.Context, message string, err error) {
	body := gin.H{"error": message}
	if gin.Mode() != gin.ReleaseMode && err != nil {
		body["details"] = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, body)
}

// paramID parses a positive numeric path parameter.
func paramID(ctx *gin.Context, name, resource string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + resource + " ID"})
		return 0, false
	}
	return uint(id), true
}
