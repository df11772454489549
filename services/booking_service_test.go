package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"table-booking/config"
	"table-booking/models"
)

func newBookingService(res *fakeReservations) (*BookingService, *fakePublisher) {
	widget := config.WidgetConfig{MaxPartySize: 8, MaxBookingWindowDays: 30}
	c := NewBatchBookingCoordinator(res, &fakeAnnotator{}, widget, 14)
	pub := &fakePublisher{}
	c.Events = pub
	s := NewBookingService(c, NewDuplicateChecker(res), widget)
	s.now = func() time.Time { return time.Date(2025, 5, 20, 10, 0, 0, 0, time.Local) }
	return s, pub
}

var okGuest = models.GuestIdentity{Name: "John Smith", Email: "john@x.com"}

func TestCreateBookingSuccess(t *testing.T) {
	s, pub := newBookingService(&fakeReservations{})

	res, dup, err := s.CreateBooking(context.Background(), models.NightPlan{Date: day, Time: "19:00", People: 2}, okGuest, false)
	require.NoError(t, err)
	assert.Nil(t, dup)
	assert.True(t, res.Success)
	assert.Equal(t, "res-"+day, res.BookingID)
	assert.Equal(t, []string{EventBookingCreated}, pub.keys)
}

func TestCreateBookingDuplicate(t *testing.T) {
	res := &fakeReservations{byDate: map[string][]models.Reservation{day: {{Time: "18:30", People: 3, GuestEmail: "john@x.com"}}}}
	s, _ := newBookingService(res)
	plan := models.NightPlan{Date: day, Time: "19:00", People: 2}

	_, dup, err := s.CreateBooking(context.Background(), plan, okGuest, false)
	assert.ErrorIs(t, err, ErrDuplicate)
	require.NotNil(t, dup)
	assert.Equal(t, "18:30", dup.ExistingTime)
	assert.Empty(t, res.created)

	out, _, err := s.CreateBooking(context.Background(), plan, okGuest, true)
	require.NoError(t, err)
	assert.True(t, out.Success)
}

func TestCreateBookingValidation(t *testing.T) {
	s, _ := newBookingService(&fakeReservations{})
	ctx := context.Background()
	plan := models.NightPlan{Date: day, Time: "19:00", People: 2}

	_, _, err := s.CreateBooking(ctx, plan, models.GuestIdentity{Name: "J", Email: "john@x.com"}, false)
	assert.ErrorIs(t, err, ErrInvalidGuest)

	_, _, err = s.CreateBooking(ctx, plan, models.GuestIdentity{Name: "John", Email: "john@"}, false)
	assert.ErrorIs(t, err, ErrInvalidGuest)

	_, _, err = s.CreateBooking(ctx, plan, models.GuestIdentity{Name: "John", Email: "john@x.com", Phone: "123"}, false)
	assert.ErrorIs(t, err, ErrInvalidGuest)

	_, _, err = s.CreateBooking(ctx, models.NightPlan{Date: day, Time: "19:00", People: 9}, okGuest, false)
	assert.ErrorIs(t, err, ErrPartyTooLarge)

	_, _, err = s.CreateBooking(ctx, models.NightPlan{Date: "2025-05-19", Time: "19:00", People: 2}, okGuest, false)
	assert.ErrorIs(t, err, ErrOutsideWindow)

	_, _, err = s.CreateBooking(ctx, models.NightPlan{Date: "2025-07-01", Time: "19:00", People: 2}, okGuest, false)
	assert.ErrorIs(t, err, ErrOutsideWindow)

	_, _, err = s.CreateBooking(ctx, models.NightPlan{Date: day, People: 2}, okGuest, false)
	assert.ErrorIs(t, err, ErrMissingFields)
}
