package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"nawabus/internal/http/middleware"
	"nawabus/internal/repositories"
	"nawabus/internal/services"
)

// API bundles the shared dependencies; per-request services are built in
// each handler so logs carry the request id.
type API struct {
	DB        *sql.DB
	JWTSecret []byte
	Drafts    services.DraftStore
	Gateway   services.ReferenceClient
	LogoURL   string
}

func (a API) searchService(c *gin.Context) services.SearchService {
	return services.SearchService{
		Trips:     repositories.TripRepository{DB: a.DB},
		Tickets:   repositories.TicketRepository{DB: a.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

func (a API) draftService(c *gin.Context) services.DraftService {
	return services.DraftService{
		Trips:     repositories.TripRepository{DB: a.DB},
		Tickets:   repositories.TicketRepository{DB: a.DB},
		Store:     a.Drafts,
		RequestID: middleware.GetRequestID(c),
	}
}

func (a API) checkoutService(c *gin.Context) services.CheckoutService {
	return services.CheckoutService{
		DB:        a.DB,
		Tickets:   repositories.TicketRepository{DB: a.DB},
		Payments:  repositories.PaymentRepository{DB: a.DB},
		Profiles:  repositories.ProfileRepository{DB: a.DB},
		Drafts:    a.Drafts,
		Gateway:   a.Gateway,
		RequestID: middleware.GetRequestID(c),
	}
}

func (a API) docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		Tickets:   repositories.TicketRepository{DB: a.DB},
		Trips:     repositories.TripRepository{DB: a.DB},
		Payments:  repositories.PaymentRepository{DB: a.DB},
		Profiles:  repositories.ProfileRepository{DB: a.DB},
		LogoURL:   a.LogoURL,
		RequestID: middleware.GetRequestID(c),
	}
}

func (a API) authService(c *gin.Context) services.AuthService {
	return services.AuthService{
		Users:     repositories.UserRepository{DB: a.DB},
		Profiles:  repositories.ProfileRepository{DB: a.DB},
		JWTSecret: a.JWTSecret,
		RequestID: middleware.GetRequestID(c),
	}
}
