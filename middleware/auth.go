package middleware

import (
	"fmt"
	"net/http"

	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const UserContextKey = "userID"

// AuthMiddleware validates the session cookie and injects the user ID into
// the Gin context. Unauthenticated calls fail fast; checkout never prompts
// for login inline.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)

	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("token")
		if err != nil || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			return
		}

		claims, err := parseToken(tokenStr, secret)
		if err != nil {
			logger.Warn(c, "Rejected request with invalid session token",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			return
		}

		c.Set(UserContextKey, sub)
		c.Next()
	}
}

func parseToken(tokenStr string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// GetUserID returns the authenticated user ID set by AuthMiddleware.
func GetUserID(c *gin.Context) string {
	if val, ok := c.Get(UserContextKey); ok {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}
