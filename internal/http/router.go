package api

import (
	"database/sql"
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"nawabus/internal/config"
	"nawabus/internal/http/handlers"
	"nawabus/internal/http/middleware"
	"nawabus/internal/services"
	"nawabus/internal/utils"
)

// NewRouter wires the gin engine. The draft store and payment gateway
// are injected so tests can substitute them.
func NewRouter(env config.Env, db *sql.DB, drafts services.DraftStore, gateway services.ReferenceClient) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Logger().Warnf("failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "rota não encontrada",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	h := handlers.API{
		DB:        db,
		JWTSecret: []byte(env.JWTSecret),
		Drafts:    drafts,
		Gateway:   gateway,
		LogoURL:   env.LogoURL,
	}
	authRequired := middleware.RequireAuth(h.JWTSecret)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", h.Health)
		apiGroup.GET("/db-check", h.DBCheck)

		auth := apiGroup.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)

		trips := apiGroup.Group("/trips")
		trips.GET("/search", h.SearchTrips)
		trips.GET("/:id", h.GetTrip)
		trips.GET("/:id/seats", h.GetTripSeats)

		draftRoutes := apiGroup.Group("/bookings/drafts")
		draftRoutes.POST("", h.CreateDraft)
		draftRoutes.GET("/:id", h.GetDraft)

		checkout := apiGroup.Group("/checkout", authRequired)
		checkout.POST("", h.Checkout)
		checkout.GET("/:reference/ticket", h.PendingTicket)

		apiGroup.GET("/tickets/download/:transaction_id", h.DownloadTicket)
	}

	return r
}
