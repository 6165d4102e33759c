package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"github.com/golang-jwt/jwt/v5"

	"nawabus/internal/domain"
	"nawabus/internal/domain/models"
	"nawabus/internal/http/middleware"
	"nawabus/internal/services"
	"nawabus/pkg/multicaixa"
)

func signTestToken(t *testing.T, secret []byte, userID int64) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func draftFixture(id string) models.BookingDraft {
	return models.BookingDraft{
		ID:       id,
		TripType: domain.TripOneWay,
		Outbound: models.DraftLeg{
			TripID:    7,
			Seats:     []int{3, 4},
			PriceKz:   5000,
			SeatClass: "executivo",
			TotalKz:   10000,
		},
		TotalPriceKz: 10000,
		CreatedAt:    time.Now(),
	}
}

type stubGateway struct {
	resp multicaixa.ReferenceResponse
	err  error
}

func (s stubGateway) CreateReference(context.Context, multicaixa.ReferenceRequest) (multicaixa.ReferenceResponse, error) {
	return s.resp, s.err
}

func newTestAPI(t *testing.T, gw services.ReferenceClient) (API, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return API{
		DB:        db,
		JWTSecret: []byte("test-secret"),
		Drafts:    services.NewMemoryDraftStore(),
		Gateway:   gw,
	}, mock
}

func testRouter(a API) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/api/trips/search", a.SearchTrips)
	r.GET("/api/trips/:id/seats", a.GetTripSeats)
	r.POST("/api/bookings/drafts", a.CreateDraft)
	r.GET("/api/bookings/drafts/:id", a.GetDraft)
	r.POST("/api/checkout", middleware.RequireAuth(a.JWTSecret), a.Checkout)
	r.GET("/api/tickets/download/:transaction_id", a.DownloadTicket)
	return r
}

func tripSearchRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "route_id", "bus_id", "departure_time", "arrival_time",
		"price_kz", "available_seats", "seat_class", "status",
		"r_id", "origin_city", "origin_province", "destination_city", "destination_province",
		"distance_km", "estimated_duration_hours", "base_price_kz", "active",
		"b_id", "company_name", "make", "model", "license_plate", "capacity", "amenities",
	}).AddRow(
		7, 1, 1, time.Now().Add(24*time.Hour), time.Now().Add(30*time.Hour),
		5000, 30, "executivo", "scheduled",
		1, "Luanda", "Luanda", "Benguela", "Benguela",
		540.0, 6.0, 5000, 1,
		1, "NawaBus Express", "Mercedes", "Tourismo", "LD-43-12-AB", 40, "wifi,ac",
	)
}

func TestSearchTripsEndpoint(t *testing.T) {
	api, mock := newTestAPI(t, stubGateway{})
	r := testRouter(api)

	mock.ExpectQuery(regexp.QuoteMeta("t.status = 'scheduled'")).
		WillReturnRows(tripSearchRows())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/trips/search?origin=Luanda&destination=Benguela&date=2026-09-12", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}

	var body struct {
		Count int `json:"count"`
		Trips []struct {
			ID    int64 `json:"id"`
			Route struct {
				OriginCity string `json:"origin_city"`
			} `json:"routes"`
		} `json:"trips"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 1 || body.Trips[0].ID != 7 || body.Trips[0].Route.OriginCity != "Luanda" {
		t.Fatalf("payload wrong: %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "return_trips") {
		t.Fatalf("one-way payload must not carry return trips: %s", w.Body.String())
	}
}

func TestSearchTripsRoundTripEndpoint(t *testing.T) {
	api, mock := newTestAPI(t, stubGateway{})
	r := testRouter(api)

	mock.ExpectQuery(regexp.QuoteMeta("t.status = 'scheduled'")).
		WithArgs("%luanda%", "%luanda%", "%benguela%", "%benguela%",
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(tripSearchRows())
	mock.ExpectQuery(regexp.QuoteMeta("t.status = 'scheduled'")).
		WithArgs("%benguela%", "%benguela%", "%luanda%", "%luanda%",
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(tripSearchRows())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/trips/search?origin=Luanda&destination=Benguela&date=2026-09-12&trip_type=round-trip&return_date=2026-09-15", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}

	var body struct {
		TripType    string `json:"trip_type"`
		Count       int    `json:"count"`
		ReturnCount int    `json:"return_count"`
		ReturnTrips []struct {
			ID int64 `json:"id"`
		} `json:"return_trips"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.TripType != "round-trip" || body.Count != 1 || body.ReturnCount != 1 {
		t.Fatalf("payload wrong: %s", w.Body.String())
	}
	if len(body.ReturnTrips) != 1 || body.ReturnTrips[0].ID != 7 {
		t.Fatalf("return trips wrong: %s", w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSearchTripsMissingParams(t *testing.T) {
	api, _ := newTestAPI(t, stubGateway{})
	r := testRouter(api)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/trips/search?origin=Luanda", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSeatMapEndpoint(t *testing.T) {
	api, mock := newTestAPI(t, stubGateway{})
	r := testRouter(api)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(tripSearchRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT seat_number FROM tickets")).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("3,4"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/trips/7/seats", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}

	var plan struct {
		Capacity int   `json:"capacity"`
		Occupied []int `json:"occupied_seats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if plan.Capacity != 40 || len(plan.Occupied) != 2 {
		t.Fatalf("plan wrong: %s", w.Body.String())
	}
}

func TestDraftRoundTripThroughHTTP(t *testing.T) {
	api, mock := newTestAPI(t, stubGateway{})
	r := testRouter(api)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(tripSearchRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT seat_number FROM tickets")).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}))

	payload := bytes.NewBufferString(`{"outbound_trip_id":7,"outbound_seats":[3,4]}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/drafts", payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d body = %s", w.Code, w.Body.String())
	}

	var draft struct {
		ID           string `json:"id"`
		TotalPriceKz int64  `json:"total_price_kz"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &draft); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if draft.ID == "" || draft.TotalPriceKz != 10000 {
		t.Fatalf("draft wrong: %s", w.Body.String())
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/api/bookings/drafts/"+draft.ID, nil)
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("get status = %d", w2.Code)
	}
}

func TestDraftConflictMapsTo409(t *testing.T) {
	api, mock := newTestAPI(t, stubGateway{})
	r := testRouter(api)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(tripSearchRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT seat_number FROM tickets")).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("3"))

	payload := bytes.NewBufferString(`{"outbound_trip_id":7,"outbound_seats":[3]}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/drafts", payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestCheckoutRequiresAuth(t *testing.T) {
	api, _ := newTestAPI(t, stubGateway{})
	r := testRouter(api)

	payload := bytes.NewBufferString(`{"draft_id":"d-1"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCheckoutUpstreamErrorSurfacesVerbatim(t *testing.T) {
	gw := stubGateway{err: domain.UpstreamError{Service: "pagamentos", Status: 422, Msg: "montante acima do limite"}}
	api, mock := newTestAPI(t, gw)
	r := testRouter(api)

	if err := api.Drafts.Put(context.Background(), draftFixture("d-1")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM profiles p")).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "first_name", "last_name", "phone_number", "email"}).
			AddRow(12, "Maria", "Silva", "", "maria@example.com"))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT seat_number FROM tickets")).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tickets")).
		WillReturnResult(sqlmock.NewResult(101, 1))
	mock.ExpectCommit()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tickets")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	payload := bytes.NewBufferString(`{"draft_id":"d-1"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", payload)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, api.JWTSecret, 12))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "montante acima do limite" {
		t.Fatalf("gateway message not verbatim: %q", body.Error)
	}
}

func TestDownloadTicketUnknownTransaction(t *testing.T) {
	api, mock := newTestAPI(t, stubGateway{})
	r := testRouter(api)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE transaction_id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tickets/download/TX-404", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Pagamento não encontrado" {
		t.Fatalf("message = %q", body.Error)
	}
}
