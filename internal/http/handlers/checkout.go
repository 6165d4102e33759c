package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nawabus/internal/http/middleware"
)

type checkoutRequest struct {
	DraftID string `json:"draft_id"`
}

// POST /api/checkout
func (a API) Checkout(c *gin.Context) {
	var req checkoutRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	result, err := a.checkoutService(c).Checkout(c.Request.Context(), middleware.GetUserID(c), req.DraftID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GET /api/checkout/:reference/ticket
func (a API) PendingTicket(c *gin.Context) {
	pdf, filename, err := a.docsService(c).GenerateForReference(c.Param("reference"), middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
