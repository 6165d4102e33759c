package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nawabus/internal/services"
)

// POST /api/auth/register
func (a API) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	session, err := a.authService(c).Register(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// POST /api/auth/login
func (a API) Login(c *gin.Context) {
	var req services.LoginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	session, err := a.authService(c).Login(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
