package repositories

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"nawabus/internal/domain"
	"nawabus/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

const tripColumns = `t.id, t.route_id, t.bus_id, t.departure_time, t.arrival_time,
	t.price_kz, t.available_seats, t.seat_class, t.status,
	r.id, r.origin_city, r.origin_province, r.destination_city, r.destination_province,
	r.distance_km, r.estimated_duration_hours, r.base_price_kz, r.active,
	b.id, b.company_name, b.make, b.model, b.license_plate, b.capacity, b.amenities`

const tripJoins = ` FROM trips t
	JOIN routes r ON r.id = t.route_id
	JOIN buses b ON b.id = t.bus_id`

// SearchFilter narrows bookable trips to one calendar day and one
// origin/destination pair (case-insensitive substring on city or province).
type SearchFilter struct {
	Origin      string
	Destination string
	DayStart    time.Time
	DayEnd      time.Time
}

// GetByID loads one trip with its route and bus reference data.
func (r TripRepository) GetByID(id int64) (models.Trip, error) {
	row := r.DB.QueryRow(`SELECT `+tripColumns+tripJoins+` WHERE t.id = ?`, id)
	trip, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return trip, domain.NotFoundError{Resource: "viagem", Err: err}
	}
	if err != nil {
		return trip, domain.InternalError{Err: err}
	}
	return trip, nil
}

// Search returns scheduled trips with free seats matching the filter,
// ordered by ascending departure.
func (r TripRepository) Search(f SearchFilter) ([]models.Trip, error) {
	origin := "%" + strings.ToLower(strings.TrimSpace(f.Origin)) + "%"
	destination := "%" + strings.ToLower(strings.TrimSpace(f.Destination)) + "%"

	rows, err := r.DB.Query(`SELECT `+tripColumns+tripJoins+`
		WHERE t.status = 'scheduled' AND t.available_seats > 0
		  AND (LOWER(r.origin_city) LIKE ? OR LOWER(r.origin_province) LIKE ?)
		  AND (LOWER(r.destination_city) LIKE ? OR LOWER(r.destination_province) LIKE ?)
		  AND t.departure_time BETWEEN ? AND ?
		ORDER BY t.departure_time ASC`,
		origin, origin, destination, destination, f.DayStart, f.DayEnd)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, trip)
	}
	if err := rows.Err(); err != nil {
		return out, domain.InternalError{Err: err}
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (models.Trip, error) {
	var t models.Trip
	var active int
	err := row.Scan(
		&t.ID, &t.RouteID, &t.BusID, &t.DepartureTime, &t.ArrivalTime,
		&t.PriceKz, &t.AvailableSeats, &t.SeatClass, &t.Status,
		&t.Route.ID, &t.Route.OriginCity, &t.Route.OriginProvince,
		&t.Route.DestinationCity, &t.Route.DestinationProvince,
		&t.Route.DistanceKm, &t.Route.EstimatedHours, &t.Route.BasePriceKz, &active,
		&t.Bus.ID, &t.Bus.CompanyName, &t.Bus.Make, &t.Bus.Model,
		&t.Bus.LicensePlate, &t.Bus.Capacity, &t.Bus.Amenities,
	)
	t.Route.Active = active != 0
	return t, err
}
