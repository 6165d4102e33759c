package services

import (
	"fmt"
	"time"

	"nawabus/internal/domain"
	"nawabus/internal/domain/models"
	"nawabus/internal/repositories"
	"nawabus/internal/utils"
)

// SearchService answers the trip-search and seat-map reads.
type SearchService struct {
	Trips     repositories.TripRepository
	Tickets   repositories.TicketRepository
	RequestID string
}

// SearchQuery is the raw search form input. Dates arrive as YYYY-MM-DD;
// ReturnDate is only read for round trips.
type SearchQuery struct {
	Origin      string
	Destination string
	Date        string
	TripType    string
	ReturnDate  string
}

// SearchResult holds the bookable trips per leg. Return is nil for
// one-way searches.
type SearchResult struct {
	TripType domain.TripType `json:"trip_type"`
	Outbound []models.Trip   `json:"outbound_trips"`
	Return   []models.Trip   `json:"return_trips,omitempty"`
}

// Search validates the query and returns bookable trips for the given
// day. Round-trip searches run a second query with origin and
// destination swapped on the return day.
func (s SearchService) Search(q SearchQuery) (SearchResult, error) {
	var res SearchResult

	origin := utils.TrimOrEmpty(q.Origin)
	destination := utils.TrimOrEmpty(q.Destination)
	if origin == "" {
		return res, domain.ValidationError{Field: "origin", Msg: "origem obrigatória"}
	}
	if destination == "" {
		return res, domain.ValidationError{Field: "destination", Msg: "destino obrigatório"}
	}

	tripType := domain.TripType(utils.TrimOrEmpty(q.TripType))
	if tripType == "" {
		tripType = domain.TripOneWay
	}
	if tripType != domain.TripOneWay && tripType != domain.TripRoundTrip {
		return res, domain.ValidationError{Field: "trip_type", Msg: "tipo de viagem inválido"}
	}

	day, err := utils.ParseDate(q.Date)
	if err != nil {
		return res, domain.ValidationError{Field: "date", Msg: "data inválida, use AAAA-MM-DD", Err: err}
	}
	var returnDay time.Time
	if tripType == domain.TripRoundTrip {
		returnDay, err = utils.ParseDate(q.ReturnDate)
		if err != nil {
			return res, domain.ValidationError{Field: "return_date", Msg: "data de regresso inválida, use AAAA-MM-DD", Err: err}
		}
	}

	outbound, err := s.searchDay(origin, destination, day)
	if err != nil {
		return res, err
	}
	res = SearchResult{TripType: tripType, Outbound: outbound}

	if tripType == domain.TripRoundTrip {
		ret, err := s.searchDay(destination, origin, returnDay)
		if err != nil {
			return SearchResult{}, err
		}
		res.Return = ret
	}

	utils.LogEvent(s.RequestID, "trips", "search",
		fmt.Sprintf("%d viagens %s → %s em %s", len(res.Outbound), origin, destination, q.Date))
	return res, nil
}

func (s SearchService) searchDay(origin, destination string, day time.Time) ([]models.Trip, error) {
	start, end := utils.DayBounds(day)
	return s.Trips.Search(repositories.SearchFilter{
		Origin:      origin,
		Destination: destination,
		DayStart:    start,
		DayEnd:      end,
	})
}

// GetTrip loads one trip for the detail and checkout views.
func (s SearchService) GetTrip(id int64) (models.Trip, error) {
	if id <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "id", Msg: "identificador de viagem inválido"}
	}
	return s.Trips.GetByID(id)
}

// SeatMap is the rendered occupancy grid for one trip.
type SeatMap struct {
	TripID    int64      `json:"trip_id"`
	Capacity  int        `json:"capacity"`
	Occupied  []int      `json:"occupied_seats"`
	Cells     []SeatCell `json:"cells"`
	PriceKz   int64      `json:"price_kz"`
	SeatClass string     `json:"seat_class"`
}

// GetSeatMap derives occupancy from tickets and lays out the bus grid.
func (s SearchService) GetSeatMap(tripID int64) (SeatMap, error) {
	trip, err := s.GetTrip(tripID)
	if err != nil {
		return SeatMap{}, err
	}

	occupied, err := s.Tickets.OccupiedSeats(trip.ID)
	if err != nil {
		return SeatMap{}, err
	}

	return SeatMap{
		TripID:    trip.ID,
		Capacity:  trip.Bus.Capacity,
		Occupied:  occupied,
		Cells:     BuildSeatPlan(trip.Bus.Capacity, occupied),
		PriceKz:   trip.PriceKz,
		SeatClass: trip.SeatClass,
	}, nil
}
