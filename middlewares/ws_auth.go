package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/mohammedmirzada/order-tracking/pkg/resp"
	"github.com/mohammedmirzada/order-tracking/utils"
)

// WSAuthMiddleware accepts the token from ?token= (browsers cannot set
// headers on a websocket handshake) or from the Authorization header.
func WSAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			tokenStr, _ = bearerToken(c.GetHeader("Authorization"))
		}
		if tokenStr == "" {
			resp.Unauthorized(c, "Unauthorized")
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Unauthorized(c, "Unauthorized")
			return
		}

		utils.SetCurrentUser(c, claims)
		c.Next()
	}
}
