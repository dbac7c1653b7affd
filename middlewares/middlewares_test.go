package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kariqs/perfume-api/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeTokens map[string]*services.Claims

func (f fakeTokens) ParseToken(token string) (*services.Claims, error) {
	if claims, ok := f[token]; ok {
		return claims, nil
	}
	return nil, errors.New("bad token")
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	tokens := fakeTokens{
		"customer": {ID: 2, Email: "jane@example.com"},
		"admin":    {ID: 1, Email: "admin@example.com", IsAdmin: true},
	}

	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/me", RequireAuth(tokens), func(ctx *gin.Context) {
		claims, _ := CurrentUser(ctx)
		ctx.JSON(http.StatusOK, gin.H{"id": claims.ID})
	})
	router.GET("/admin", RequireAuth(tokens), RequireAdmin(), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
	router.GET("/unguarded-admin", RequireAdmin(), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})
	return router
}

func request(router *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	router := newRouter()

	tests := []struct {
		name          string
		authorization string
		status        int
		body          string
	}{
		{"missing header", "", http.StatusUnauthorized, "No token provided"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "No token provided"},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "No token provided"},
		{"unknown token", "Bearer forged", http.StatusUnauthorized, "Invalid token"},
		{"valid token", "Bearer customer", http.StatusOK, `"id":2`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := request(router, "/me", tt.authorization)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	router := newRouter()

	assert.Equal(t, http.StatusForbidden, request(router, "/admin", "Bearer customer").Code)
	assert.Equal(t, http.StatusNoContent, request(router, "/admin", "Bearer admin").Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, "/unguarded-admin", "").Code)
}
