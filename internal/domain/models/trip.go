package models

import "time"

// Trip is a scheduled departure of a bus on a route. Only "scheduled"
// trips with available seats are bookable; occupancy is derived from
// tickets, never counted here.
type Trip struct {
	ID             int64     `json:"id"`
	RouteID        int64     `json:"route_id"`
	BusID          int64     `json:"bus_id"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	PriceKz        int64     `json:"price_kz"`
	AvailableSeats int       `json:"available_seats"`
	SeatClass      string    `json:"seat_class"`
	Status         string    `json:"status"`

	Route Route `json:"routes"`
	Bus   Bus   `json:"buses"`
}
