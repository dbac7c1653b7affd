package middlewares

import (
	"net/http"
	"strings"

	"github.com/Kariqs/perfume-api/services"
	"github.com/gin-gonic/gin"
)

const userKey = "user"

// TokenParser verifies a bearer token and returns its claims.
type TokenParser interface {
	ParseToken(token string) (*services.Claims, error)
}

// RequireAuth rejects requests without a valid "Authorization: Bearer" token
// and stores the token claims in the context under "user".
func RequireAuth(tokens TokenParser) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		claims, err := tokens.ParseToken(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx.Set(userKey, claims)
		ctx.Next()
	}
}

func CurrentUser(ctx *gin.Context) (*services.Claims, bool) {
	value, exists := ctx.Get(userKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*services.Claims)
	return claims, ok
}
