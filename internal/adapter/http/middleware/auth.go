package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskapp/internal/core/model/response"
	"taskapp/internal/core/token"
)

const UserIDKey = "x-user-id"

// JwtMiddleware rejects requests without a valid bearer token and
// stores the token's subject under UserIDKey for downstream handlers.
func JwtMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Detail: "Missing or invalid authorization header",
			})
			return
		}

		if !strings.HasPrefix(bearer, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Detail: "Missing or invalid authorization header",
			})
			return
		}

		claims, err := token.VerifyToken(bearer[len("Bearer "):])

		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Detail: "Invalid or expired token",
			})
			return
		}

		sub, ok := claims["sub"].(string)

		if !ok || sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Detail: "Invalid or expired token",
			})
			return
		}

		c.Set(UserIDKey, sub)
		c.Next()
	}
}

// AuthUserID returns the identity the token middleware stored.
func AuthUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
