package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nawabus/internal/db"
)

// GET /api/health
func (a API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// GET /api/db-check
func (a API) DBCheck(c *gin.Context) {
	if err := a.DB.Ping(); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "base de dados indisponível", err)
		return
	}

	tables := gin.H{}
	for _, table := range []string{"trips", "tickets", "payment_transactions"} {
		tables[table] = db.HasTable(a.DB, table)
	}
	c.JSON(http.StatusOK, gin.H{"database": "ok", "tables": tables})
}
