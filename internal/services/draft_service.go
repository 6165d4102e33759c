package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"nawabus/internal/domain"
	"nawabus/internal/domain/models"
	"nawabus/internal/repositories"
	"nawabus/internal/utils"
)

// DraftTTL bounds how long an unfinished checkout may hold a draft.
const DraftTTL = 30 * time.Minute

// DraftStore keeps booking drafts under opaque ids. Take removes the
// draft atomically, which is what makes checkout single-shot.
type DraftStore interface {
	Put(ctx context.Context, draft models.BookingDraft) error
	Get(ctx context.Context, id string) (models.BookingDraft, bool, error)
	Take(ctx context.Context, id string) (models.BookingDraft, bool, error)
}

// MemoryDraftStore is the single-process fallback (and the test double).
type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string]memoryDraft
}

type memoryDraft struct {
	draft     models.BookingDraft
	expiresAt time.Time
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: map[string]memoryDraft{}}
}

func (m *MemoryDraftStore) Put(_ context.Context, draft models.BookingDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[draft.ID] = memoryDraft{draft: draft, expiresAt: time.Now().Add(DraftTTL)}
	return nil
}

func (m *MemoryDraftStore) Get(_ context.Context, id string) (models.BookingDraft, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.drafts[id]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(m.drafts, id)
		return models.BookingDraft{}, false, nil
	}
	return entry.draft, true, nil
}

func (m *MemoryDraftStore) Take(_ context.Context, id string) (models.BookingDraft, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.drafts[id]
	delete(m.drafts, id)
	if !ok || time.Now().After(entry.expiresAt) {
		return models.BookingDraft{}, false, nil
	}
	return entry.draft, true, nil
}

// RedisDraftStore keeps drafts as TTL'd JSON values so checkout survives
// instance restarts and multiple replicas.
type RedisDraftStore struct {
	Client *redis.Client
}

func draftKey(id string) string { return "booking:draft:" + id }

func (r RedisDraftStore) Put(ctx context.Context, draft models.BookingDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if err := r.Client.Set(ctx, draftKey(draft.ID), payload, DraftTTL).Err(); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r RedisDraftStore) Get(ctx context.Context, id string) (models.BookingDraft, bool, error) {
	raw, err := r.Client.Get(ctx, draftKey(id)).Bytes()
	return decodeDraft(raw, err)
}

func (r RedisDraftStore) Take(ctx context.Context, id string) (models.BookingDraft, bool, error) {
	raw, err := r.Client.GetDel(ctx, draftKey(id)).Bytes()
	return decodeDraft(raw, err)
}

func decodeDraft(raw []byte, err error) (models.BookingDraft, bool, error) {
	var draft models.BookingDraft
	if err == redis.Nil {
		return draft, false, nil
	}
	if err != nil {
		return draft, false, domain.InternalError{Err: err}
	}
	if err := json.Unmarshal(raw, &draft); err != nil {
		return draft, false, domain.InternalError{Err: err}
	}
	return draft, true, nil
}

// DraftService validates a seat selection against live occupancy and
// freezes it into a server-side draft for one checkout attempt.
type DraftService struct {
	Trips     repositories.TripRepository
	Tickets   repositories.TicketRepository
	Store     DraftStore
	RequestID string
}

// DraftRequest carries the wizard's outcome. Return fields are only set
// for round trips.
type DraftRequest struct {
	OutboundTripID int64 `json:"outbound_trip_id"`
	OutboundSeats  []int `json:"outbound_seats"`
	ReturnTripID   int64 `json:"return_trip_id,omitempty"`
	ReturnSeats    []int `json:"return_seats,omitempty"`
}

// Create builds and stores the draft. The requested seats run through
// the same selection wizard the seat map exposes, so occupancy, range
// and per-leg gates are enforced by one state machine. Prices are
// re-read from the trips, never trusted from the client.
func (s DraftService) Create(ctx context.Context, req DraftRequest) (models.BookingDraft, error) {
	var draft models.BookingDraft

	if req.OutboundTripID <= 0 {
		return draft, domain.ValidationError{Field: "outbound_trip_id", Msg: "viagem de ida obrigatória"}
	}

	outbound, outboundOccupied, err := s.loadBookableTrip(req.OutboundTripID)
	if err != nil {
		return draft, err
	}
	wiz := NewSeatWizard(outbound.Bus.Capacity, outboundOccupied, outbound.PriceKz)

	var ret models.Trip
	if req.ReturnTripID > 0 {
		var retOccupied []int
		ret, retOccupied, err = s.loadBookableTrip(req.ReturnTripID)
		if err != nil {
			return draft, err
		}
		wiz.WithReturn(ret.Bus.Capacity, retOccupied, ret.PriceKz)
	}

	if err := selectAll(wiz.Active(), req.OutboundSeats); err != nil {
		return draft, err
	}
	if err := wiz.Advance(); err != nil {
		return draft, err
	}
	if wiz.Return != nil {
		if err := selectAll(wiz.Active(), req.ReturnSeats); err != nil {
			return draft, err
		}
	}
	if err := wiz.Finalize(); err != nil {
		return draft, err
	}

	draft = models.BookingDraft{
		ID:           uuid.NewString(),
		TripType:     domain.TripOneWay,
		Outbound:     makeLeg(outbound, wiz.Outbound),
		TotalPriceKz: wiz.TotalPrice(),
		CreatedAt:    time.Now(),
	}
	if wiz.Return != nil {
		leg := makeLeg(ret, wiz.Return)
		draft.TripType = domain.TripRoundTrip
		draft.Return = &leg
	}

	if err := s.Store.Put(ctx, draft); err != nil {
		return models.BookingDraft{}, err
	}
	utils.LogEvent(s.RequestID, "drafts", "create", "rascunho de reserva criado")
	return draft, nil
}

// Get reads a draft back for the checkout page without consuming it.
func (s DraftService) Get(ctx context.Context, id string) (models.BookingDraft, error) {
	draft, ok, err := s.Store.Get(ctx, id)
	if err != nil {
		return draft, err
	}
	if !ok {
		return draft, domain.NotFoundError{Resource: "reserva"}
	}
	return draft, nil
}

func (s DraftService) loadBookableTrip(tripID int64) (models.Trip, []int, error) {
	trip, err := s.Trips.GetByID(tripID)
	if err != nil {
		return models.Trip{}, nil, err
	}
	if trip.Status != "scheduled" || trip.AvailableSeats <= 0 {
		return models.Trip{}, nil, domain.ValidationError{Field: "trip", Msg: "a viagem já não está disponível para reserva"}
	}
	occupied, err := s.Tickets.OccupiedSeats(trip.ID)
	if err != nil {
		return models.Trip{}, nil, err
	}
	return trip, occupied, nil
}

func makeLeg(trip models.Trip, sel *SeatSelection) models.DraftLeg {
	chosen := sel.Seats()
	return models.DraftLeg{
		TripID:    trip.ID,
		Seats:     chosen,
		PriceKz:   trip.PriceKz,
		SeatClass: trip.SeatClass,
		RouteName: trip.Route.Name(),
		Departure: trip.DepartureTime.Format(time.RFC3339),
		TotalKz:   int64(len(chosen)) * trip.PriceKz,
	}
}
