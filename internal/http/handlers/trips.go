package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nawabus/internal/domain"
	"nawabus/internal/services"
)

// GET /api/trips/search?origin=&destination=&date=&trip_type=&return_date=
func (a API) SearchTrips(c *gin.Context) {
	res, err := a.searchService(c).Search(services.SearchQuery{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		Date:        c.Query("date"),
		TripType:    c.Query("trip_type"),
		ReturnDate:  c.Query("return_date"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	payload := gin.H{
		"trip_type": res.TripType,
		"trips":     res.Outbound,
		"count":     len(res.Outbound),
	}
	if res.TripType == domain.TripRoundTrip {
		payload["return_trips"] = res.Return
		payload["return_count"] = len(res.Return)
	}
	c.JSON(http.StatusOK, payload)
}

// GET /api/trips/:id
func (a API) GetTrip(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "identificador de viagem inválido", nil)
		return
	}

	trip, err := a.searchService(c).GetTrip(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"trip":      trip,
		"amenities": trip.Bus.AmenityList(),
	})
}

// GET /api/trips/:id/seats
func (a API) GetTripSeats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "identificador de viagem inválido", nil)
		return
	}

	plan, err := a.searchService(c).GetSeatMap(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}
