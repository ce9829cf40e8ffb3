package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/mohammedmirzada/order-tracking/pkg/resp"
	"github.com/mohammedmirzada/order-tracking/services"
	"github.com/mohammedmirzada/order-tracking/utils"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(s *services.AuthService) *AuthController {
	return &AuthController{Service: s}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := a.Service.Register(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, user)
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := a.Service.Login(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Service.Me(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, user)
}
