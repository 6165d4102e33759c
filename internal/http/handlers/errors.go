package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nawabus/internal/domain"
)

// RespondDomainError maps domain errors to HTTP responses. Upstream
// errors keep their verbatim message; everything unclassified collapses
// to a generic 500.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error(), nil)
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, err.Error(), nil)
	case domain.IsUpstream(err):
		status := http.StatusBadGateway
		var ue domain.UpstreamError
		if errors.As(err, &ue) && ue.Status >= 400 && ue.Status < 500 {
			status = ue.Status
		}
		RespondError(c, status, err.Error(), nil)
	default:
		RespondError(c, http.StatusInternalServerError, "ocorreu um erro inesperado", nil)
	}
}
