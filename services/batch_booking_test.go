package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"table-booking/config"
	"table-booking/models"
)

var testWidget = config.WidgetConfig{
	HotelGuestFieldID:   "hotelGuest",
	HotelGuestYesChoice: "yesChoice",
	BookingRefFieldID:   "bookingRef",
	NoTableFieldName:    "Restaurant Status",
}

type fakeBatchStore struct {
	batches int
	marks   []string
	markErr error
}

func (f *fakeBatchStore) SaveBatch(context.Context, string, models.GuestIdentity, []models.BatchEntryResult) error {
	f.batches++
	return nil
}

func (f *fakeBatchStore) SaveNoTableMark(_ context.Context, _ int, dates []string, syncErr error) error {
	f.marks = dates
	f.markErr = syncErr
	return nil
}

func nights(dates ...string) []models.NightPlan {
	out := make([]models.NightPlan, len(dates))
	for i, d := range dates {
		out[i] = models.NightPlan{Date: d, Time: "19:00", People: 2, PeriodID: "dinner"}
	}
	return out
}

func TestSubmitBatchMiddleNightFails(t *testing.T) {
	res := &fakeReservations{CreateFunc: func(_ context.Context, p models.BookingPayload) (string, error) {
		if p.Date == "2025-06-02" {
			return "", errBoom
		}
		return "res-" + p.Date, nil
	}}
	store := &fakeBatchStore{}
	pub := &fakePublisher{}
	c := NewBatchBookingCoordinator(res, &fakeAnnotator{}, testWidget, 14)
	c.Store = store
	c.Events = pub

	out, err := c.SubmitBatch(context.Background(), nights("2025-06-01", "2025-06-02", "2025-06-03"), models.GuestIdentity{Name: "John Smith", Email: "a@x.com"})
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, models.BatchEntryResult{Date: "2025-06-01", Success: true, BookingID: "res-2025-06-01"}, out[0])
	assert.Equal(t, "2025-06-02", out[1].Date)
	assert.False(t, out[1].Success)
	assert.NotEmpty(t, out[1].Error)
	assert.Equal(t, models.BatchEntryResult{Date: "2025-06-03", Success: true, BookingID: "res-2025-06-03"}, out[2])

	assert.Equal(t, 1, store.batches)
	assert.Equal(t, []string{EventBatchSubmitted}, pub.keys)
}

func TestSubmitBatchMissingFieldsPerEntry(t *testing.T) {
	res := &fakeReservations{}
	c := NewBatchBookingCoordinator(res, &fakeAnnotator{}, testWidget, 14)

	plans := nights("2025-06-01", "2025-06-02")
	plans[1].Time = ""
	out, err := c.SubmitBatch(context.Background(), plans, models.GuestIdentity{Name: "John Smith", Email: "a@x.com"})
	require.NoError(t, err)
	assert.True(t, out[0].Success)
	assert.False(t, out[1].Success)
	assert.Equal(t, "Missing required fields", out[1].Error)
	assert.Len(t, res.created, 1)
}

func TestSubmitBatchLimits(t *testing.T) {
	c := NewBatchBookingCoordinator(&fakeReservations{}, &fakeAnnotator{}, testWidget, 2)

	_, err := c.SubmitBatch(context.Background(), nil, models.GuestIdentity{})
	assert.ErrorIs(t, err, ErrNothingToSubmit)

	_, err = c.SubmitBatch(context.Background(), nights("2025-06-01", "2025-06-02", "2025-06-03"), models.GuestIdentity{})
	assert.ErrorIs(t, err, ErrTooManyNights)
}

func TestSubmitBookingAddsResidentFields(t *testing.T) {
	res := &fakeReservations{}
	c := NewBatchBookingCoordinator(res, &fakeAnnotator{}, testWidget, 14)

	guest := models.GuestIdentity{
		Name: " John Smith ", Email: "a@x.com", Phone: "07700 900123", Notes: "window please",
		ResidentBookingID: 4411,
		CustomFields: []models.CustomFieldValue{
			{ID: "diet", Name: "Dietary", Value: "vegan"},
			{ID: "bookingRef", Value: "spoofed"},
			{Value: "no id"},
		},
	}
	r := c.SubmitBooking(context.Background(), models.NightPlan{Date: "2025-06-01", Time: "19:00", People: 2}, guest)
	require.True(t, r.Success)
	require.Len(t, res.created, 1)

	p := res.created[0]
	assert.Equal(t, "John Smith", p.Guest.Name)
	assert.True(t, p.Guest.NotificationEmail)
	assert.True(t, p.SendNotification)
	assert.Equal(t, "website", p.Source)
	assert.Equal(t, "window please", p.Notes)
	assert.Equal(t, []models.CustomFieldValue{
		{ID: "diet", Name: "Dietary", Value: "vegan"},
		{ID: "hotelGuest", Name: "Hotel Guest", Value: "yesChoice", MultipleChoiceValueName: "Yes"},
		{ID: "bookingRef", Name: "Booking #", Value: "4411"},
	}, p.CustomFields)
}

func TestSubmitBookingNonResidentHasNoResidentFields(t *testing.T) {
	res := &fakeReservations{}
	c := NewBatchBookingCoordinator(res, &fakeAnnotator{}, testWidget, 14)

	c.SubmitBooking(context.Background(), models.NightPlan{Date: "2025-06-01", Time: "19:00", People: 2}, models.GuestIdentity{Name: "Ann", Email: "ann@x.com"})
	require.Len(t, res.created, 1)
	assert.Empty(t, res.created[0].CustomFields)
}

func TestMarkNoTable(t *testing.T) {
	ann := &fakeAnnotator{}
	store := &fakeBatchStore{}
	c := NewBatchBookingCoordinator(&fakeReservations{}, ann, testWidget, 14)
	c.Store = store

	require.NoError(t, c.MarkNoTable(context.Background(), 4411, []string{"2025-06-03", "2025-06-01"}))
	require.Len(t, ann.calls, 1)
	assert.Equal(t, annotation{4411, "Restaurant Status", "No table needed: 2025-06-01, 2025-06-03"}, ann.calls[0])
	assert.Equal(t, []string{"2025-06-01", "2025-06-03"}, store.marks)
	assert.NoError(t, store.markErr)

	assert.ErrorIs(t, c.MarkNoTable(context.Background(), 0, []string{"2025-06-01"}), ErrStayNotFound)
}

func TestPlanAndSubmitStaySwallowsNoTableFailure(t *testing.T) {
	ann := &fakeAnnotator{err: errBoom}
	store := &fakeBatchStore{}
	c := NewBatchBookingCoordinator(&fakeReservations{}, ann, testWidget, 14)
	c.Store = store

	out, err := c.PlanAndSubmitStay(context.Background(), nights("2025-06-01"), []string{"2025-06-02"},
		models.GuestIdentity{Name: "John Smith", Email: "a@x.com", ResidentBookingID: 4411})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.True(t, out.Results[0].Success)
	assert.True(t, out.NoTable.Attempted)
	assert.False(t, out.NoTable.Success)
	assert.ErrorIs(t, store.markErr, errBoom)
}

func TestPlanAndSubmitStayNothingToDo(t *testing.T) {
	c := NewBatchBookingCoordinator(&fakeReservations{}, &fakeAnnotator{}, testWidget, 14)
	_, err := c.PlanAndSubmitStay(context.Background(), nil, nil, models.GuestIdentity{})
	assert.ErrorIs(t, err, ErrNothingToSubmit)
}
