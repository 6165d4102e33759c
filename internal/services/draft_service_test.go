package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"nawabus/internal/domain"
	"nawabus/internal/domain/models"
	"nawabus/internal/repositories"
)

func tripRows(id int64, priceKz int64, capacity int, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "route_id", "bus_id", "departure_time", "arrival_time",
		"price_kz", "available_seats", "seat_class", "status",
		"r_id", "origin_city", "origin_province", "destination_city", "destination_province",
		"distance_km", "estimated_duration_hours", "base_price_kz", "active",
		"b_id", "company_name", "make", "model", "license_plate", "capacity", "amenities",
	}).AddRow(
		id, 1, 1, time.Date(2026, 9, 12, 8, 0, 0, 0, time.Local), time.Date(2026, 9, 12, 14, 0, 0, 0, time.Local),
		priceKz, 30, "executivo", status,
		1, "Luanda", "Luanda", "Benguela", "Benguela",
		540.0, 6.0, priceKz, 1,
		1, "NawaBus Express", "Mercedes", "Tourismo", "LD-43-12-AB", capacity, "wifi,ac",
	)
}

func newDraftService(t *testing.T) (DraftService, sqlmock.Sqlmock, *MemoryDraftStore) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := NewMemoryDraftStore()
	svc := DraftService{
		Trips:   repositories.TripRepository{DB: db},
		Tickets: repositories.TicketRepository{DB: db},
		Store:   store,
	}
	return svc, mock, store
}

func TestDraftCreateOneWay(t *testing.T) {
	svc, mock, store := newDraftService(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(tripRows(7, 5000, 40, "scheduled"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT seat_number FROM tickets")).
		WithArgs(int64(7), domain.TicketStatusActive, domain.TicketStatusUsed).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("1,2"))

	draft, err := svc.Create(context.Background(), DraftRequest{
		OutboundTripID: 7,
		OutboundSeats:  []int{3, 4},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if draft.TripType != domain.TripOneWay {
		t.Fatalf("trip type = %s", draft.TripType)
	}
	if draft.TotalPriceKz != 10000 {
		t.Fatalf("total = %d, want 10000", draft.TotalPriceKz)
	}
	if draft.ID == "" {
		t.Fatal("draft id must be assigned")
	}

	stored, ok, err := store.Get(context.Background(), draft.ID)
	if err != nil || !ok {
		t.Fatalf("draft not stored: ok=%v err=%v", ok, err)
	}
	if got := stored.Outbound.Seats; len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Fatalf("stored seats = %v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDraftCreateRoundTripSumsLegs(t *testing.T) {
	svc, mock, _ := newDraftService(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(tripRows(7, 4000, 40, "scheduled"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT seat_number FROM tickets")).
		WithArgs(int64(7), domain.TicketStatusActive, domain.TicketStatusUsed).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = ?")).
		WithArgs(int64(9)).
		WillReturnRows(tripRows(9, 4500, 40, "scheduled"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT seat_number FROM tickets")).
		WithArgs(int64(9), domain.TicketStatusActive, domain.TicketStatusUsed).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}))

	draft, err := svc.Create(context.Background(), DraftRequest{
		OutboundTripID: 7,
		OutboundSeats:  []int{1},
		ReturnTripID:   9,
		ReturnSeats:    []int{1},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if draft.TripType != domain.TripRoundTrip {
		t.Fatalf("trip type = %s", draft.TripType)
	}
	if draft.TotalPriceKz != 8500 {
		t.Fatalf("total = %d, want 8500", draft.TotalPriceKz)
	}
	if draft.Return == nil || draft.Return.TripID != 9 {
		t.Fatalf("return leg missing: %+v", draft.Return)
	}
}

func TestDraftCreateRoundTripRequiresReturnSeats(t *testing.T) {
	svc, mock, store := newDraftService(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(tripRows(7, 4000, 40, "scheduled"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT seat_number FROM tickets")).
		WithArgs(int64(7), domain.TicketStatusActive, domain.TicketStatusUsed).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = ?")).
		WithArgs(int64(9)).
		WillReturnRows(tripRows(9, 4500, 40, "scheduled"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT seat_number FROM tickets")).
		WithArgs(int64(9), domain.TicketStatusActive, domain.TicketStatusUsed).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}))

	_, err := svc.Create(context.Background(), DraftRequest{
		OutboundTripID: 7,
		OutboundSeats:  []int{1},
		ReturnTripID:   9,
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.drafts) != 0 {
		t.Fatal("no draft may be stored when a leg has no seats")
	}
}

func TestDraftCreateRejectsOccupiedSeat(t *testing.T) {
	svc, mock, _ := newDraftService(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(tripRows(7, 5000, 40, "scheduled"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT seat_number FROM tickets")).
		WithArgs(int64(7), domain.TicketStatusActive, domain.TicketStatusUsed).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("3"))

	_, err := svc.Create(context.Background(), DraftRequest{
		OutboundTripID: 7,
		OutboundSeats:  []int{3},
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDraftCreateRejectsUnbookableTrip(t *testing.T) {
	svc, mock, _ := newDraftService(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(tripRows(7, 5000, 40, "cancelled"))

	_, err := svc.Create(context.Background(), DraftRequest{
		OutboundTripID: 7,
		OutboundSeats:  []int{3},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDraftGetUnknownID(t *testing.T) {
	svc, _, _ := newDraftService(t)

	_, err := svc.Get(context.Background(), "no-such-draft")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryDraftStoreTakeIsSingleShot(t *testing.T) {
	store := NewMemoryDraftStore()
	ctx := context.Background()

	draft := models.BookingDraft{ID: "d-1", TotalPriceKz: 5000, CreatedAt: time.Now()}
	if err := store.Put(ctx, draft); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := store.Take(ctx, "d-1")
	if err != nil || !ok {
		t.Fatalf("first take: ok=%v err=%v", ok, err)
	}
	if got.TotalPriceKz != 5000 {
		t.Fatalf("draft corrupted: %+v", got)
	}

	_, ok, err = store.Take(ctx, "d-1")
	if err != nil {
		t.Fatalf("second take: %v", err)
	}
	if ok {
		t.Fatal("second take must miss, draft already consumed")
	}
}
