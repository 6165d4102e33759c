package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nawabus/internal/domain"
)

// GET /api/tickets/download/:transaction_id
func (a API) DownloadTicket(c *gin.Context) {
	pdf, filename, err := a.docsService(c).GenerateForTransaction(c.Param("transaction_id"))
	if err != nil {
		if domain.IsNotFound(err) {
			RespondError(c, http.StatusNotFound, "Pagamento não encontrado", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
