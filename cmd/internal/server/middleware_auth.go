package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zhukovvlad/docfill-go/cmd/internal/services/auth"
)

// AuthMiddleware проверяет Bearer JWT access токен сервисного клиента.
// При успешной валидации помещает client_id и client_name в gin.Context
func AuthMiddleware(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "access token required",
			})
			c.Abort()
			return
		}

		claims, err := authService.ValidateAccessToken(h[7:])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired access token",
			})
			c.Abort()
			return
		}

		c.Set("client_id", claims.ClientID)
		c.Set("client_name", claims.ClientName)

		c.Next()
	}
}

// clientIDFromContext возвращает идентификатор вызывающей стороны: для
// клиентских роутов это client_id из JWT, для internal-группы - имя
// сервиса из service-auth.
func clientIDFromContext(c *gin.Context) string {
	if v, ok := c.Get("client_id"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	if v, ok := c.Get("service"); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return "unknown"
}
