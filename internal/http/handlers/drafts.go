package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nawabus/internal/services"
)

// POST /api/bookings/drafts
func (a API) CreateDraft(c *gin.Context) {
	var req services.DraftRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	draft, err := a.draftService(c).Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

// GET /api/bookings/drafts/:id
func (a API) GetDraft(c *gin.Context) {
	draft, err := a.draftService(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}
