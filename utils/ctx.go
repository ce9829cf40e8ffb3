package utils

import "github.com/gin-gonic/gin"

// context keys set by the auth middlewares
const (
	CtxUserID = "userId"
	CtxEmail  = "email"
	CtxRole   = "role"
)

func SetCurrentUser(c *gin.Context, claims *Claims) {
	c.Set(CtxUserID, claims.Subject)
	c.Set(CtxEmail, claims.Email)
	c.Set(CtxRole, claims.Role)
}

func CurrentUserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

func CurrentEmail(c *gin.Context) string {
	return c.GetString(CtxEmail)
}

func CurrentRole(c *gin.Context) string {
	return c.GetString(CtxRole)
}
