package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"table-booking/config"
	"table-booking/models"
)

type fakeHours struct {
	mu       sync.Mutex
	hours    []models.OpeningHour
	hoursErr map[string]error
	online   []bool
	fields   []json.RawMessage
}

func (f *fakeHours) OpeningHours(_ context.Context, date string) ([]models.OpeningHour, error) {
	if err := f.hoursErr[date]; err != nil {
		return nil, err
	}
	return append([]models.OpeningHour(nil), f.hours...), nil
}

func (f *fakeHours) AvailableTimes(_ context.Context, _ string, _ int, periodID string, onlineOnly bool) ([]models.PeriodTimes, error) {
	f.mu.Lock()
	f.online = append(f.online, onlineOnly)
	f.mu.Unlock()
	return []models.PeriodTimes{{ID: periodID, AvailableTimes: []string{"18:00", "19:00"}, ActiveCustomFields: f.fields}}, nil
}

var availWidget = config.WidgetConfig{
	DefaultCloseoutMessage: "Call {phone}",
	RestaurantPhone:        "01234",
	HotelGuestFieldID:      "hotelGuest",
	BookingRefFieldID:      "bookingRef",
}

func TestOpeningPeriodsParsesMarkers(t *testing.T) {
	h := &fakeHours{hours: []models.OpeningHour{
		{ID: "lunch", Name: "Lunch", From: "1200", To: "1430"},
		{ID: "dinner", Name: "Dinner ##RESIDENTONLY", From: "1800", To: "2130"},
	}}
	a := NewAvailabilityService(h, availWidget, 14)

	got, err := a.OpeningPeriods(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Lunch", got[0].Name)
	assert.False(t, got[0].Closed())
	assert.Equal(t, "Dinner", got[1].Name)
	assert.True(t, got[1].ResidentOnly)
	require.NotNil(t, got[1].DisplayMessage)
	assert.Equal(t, "Call 01234", *got[1].DisplayMessage)
}

func TestAvailableTimesHidesWidgetFields(t *testing.T) {
	h := &fakeHours{fields: []json.RawMessage{
		json.RawMessage(`{"_id": "hotelGuest", "name": "Hotel Guest"}`),
		json.RawMessage(`{"_id": "diet", "name": "Dietary"}`),
		json.RawMessage(`{"_id": "bookingRef", "name": "Booking #"}`),
	}}
	a := NewAvailabilityService(h, availWidget, 14)

	slots, err := a.AvailableTimes(context.Background(), day, 2, "dinner", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"18:00", "19:00"}, slots.Times)
	require.Len(t, slots.CustomFields, 1)
	assert.Contains(t, string(slots.CustomFields[0]), "diet")
}

func TestTimesForDatesResidentBypassesCloseout(t *testing.T) {
	h := &fakeHours{
		hours:    []models.OpeningHour{{ID: "dinner", Name: "Dinner ##RESIDENTONLY"}},
		hoursErr: map[string]error{"2025-06-03": errBoom},
	}
	a := NewAvailabilityService(h, availWidget, 14)
	dates := []string{"2025-06-01", "bad-date", "2025-06-03", "2025-06-01"}

	guest := a.TimesForDates(context.Background(), dates, 2, false)
	require.Len(t, guest, 2)
	assert.Empty(t, guest["2025-06-01"].Periods[0].Times)
	assert.True(t, guest["2025-06-03"].Error)
	assert.Empty(t, h.online)

	resident := a.TimesForDates(context.Background(), dates, 2, true)
	assert.Equal(t, []string{"18:00", "19:00"}, resident["2025-06-01"].Periods[0].Times)
	assert.Equal(t, []bool{false}, h.online)
}

func TestTimesForDatesCapsDates(t *testing.T) {
	a := NewAvailabilityService(&fakeHours{}, availWidget, 2)
	got := a.TimesForDates(context.Background(), []string{"2025-06-01", "2025-06-02", "2025-06-03"}, 2, false)
	assert.Len(t, got, 2)
	assert.NotContains(t, got, "2025-06-03")
}
