package services

import (
	"context"
	"errors"
	"sync"

	"table-booking/models"
)

var errBoom = errors.New("boom")

type fakeStays struct {
	mu    sync.Mutex
	recs  map[string][]models.StayRecord
	err   error
	calls int
}

func (f *fakeStays) Records(_ context.Context, date string) ([]models.StayRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.recs[date], nil
}

type fakeFetcher struct {
	StayingGuestsFunc func(ctx context.Context, date string) ([]models.StayRecord, error)
	calls             int
}

func (f *fakeFetcher) StayingGuests(ctx context.Context, date string) ([]models.StayRecord, error) {
	f.calls++
	return f.StayingGuestsFunc(ctx, date)
}

type fakeReservations struct {
	mu         sync.Mutex
	byDate     map[string][]models.Reservation
	readErr    error
	readCalls  int
	CreateFunc func(ctx context.Context, p models.BookingPayload) (string, error)
	created    []models.BookingPayload
}

func (f *fakeReservations) BookingsForDate(_ context.Context, date string) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readCalls++
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.byDate[date], nil
}

func (f *fakeReservations) CreateBooking(ctx context.Context, p models.BookingPayload) (string, error) {
	f.mu.Lock()
	f.created = append(f.created, p)
	f.mu.Unlock()
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, p)
	}
	return "res-" + p.Date, nil
}

type fakeAnnotator struct {
	mu    sync.Mutex
	err   error
	calls []annotation
}

type annotation struct {
	BookingID int
	Name      string
	Value     string
}

func (f *fakeAnnotator) SetCustomField(_ context.Context, bookingID int, name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, annotation{bookingID, name, value})
	return f.err
}

type fakeRecorder struct {
	mu      sync.Mutex
	sources []string
	tiers   []models.MatchTier
}

func (f *fakeRecorder) RecordMatch(_ context.Context, _ string, source string, res models.MatchResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources = append(f.sources, source)
	f.tiers = append(f.tiers, res.Tier)
}

type fakePublisher struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakePublisher) Publish(key string, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	return nil
}

func intPtr(i int) *int { return &i }

func stay(id int, first, last, email, phone string) models.StayRecord {
	return models.StayRecord{
		BookingID: id,
		Status:    models.StayActive,
		CheckIn:   "2025-06-01",
		CheckOut:  "2025-06-03",
		Nights:    []string{"2025-06-01", "2025-06-02"},
		Occupancy: 2,
		Guests: []models.GuestCandidate{
			{FirstName: first, LastName: last, Email: email, Phone: phone, IsPrimary: true},
		},
	}
}
