// services/availability.go
package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"table-booking/config"
	"table-booking/models"
	"table-booking/utils"
)

// AvailabilityService turns opening hours into what the widget may offer.
type AvailabilityService struct {
	hours    OpeningHoursReader
	defaults CloseoutDefaults
	hidden   map[string]bool
	maxDates int
}

func NewAvailabilityService(hours OpeningHoursReader, widget config.WidgetConfig, maxDates int) *AvailabilityService {
	if maxDates <= 0 {
		maxDates = 14
	}
	hidden := map[string]bool{}
	for _, id := range []string{widget.HotelGuestFieldID, widget.BookingRefFieldID} {
		if id != "" {
			hidden[id] = true
		}
	}
	return &AvailabilityService{
		hours:    hours,
		defaults: CloseoutDefaults{Message: widget.DefaultCloseoutMessage, Phone: widget.RestaurantPhone},
		hidden:   hidden,
		maxDates: maxDates,
	}
}

// OpeningPeriods lists the periods running on date with closeout markers parsed.
func (a *AvailabilityService) OpeningPeriods(ctx context.Context, date string) ([]models.OpeningPeriod, error) {
	hours, err := a.hours.OpeningHours(ctx, date)
	if err != nil {
		return nil, err
	}
	out := make([]models.OpeningPeriod, 0, len(hours))
	for _, h := range hours {
		c := ParseCloseout(h.Name, a.defaults)
		out = append(out, models.OpeningPeriod{
			ID:             h.ID,
			Name:           c.CleanName,
			From:           string(h.From),
			To:             string(h.To),
			IsSpecial:      h.IsSpecial,
			ResidentOnly:   c.ResidentOnly,
			DisplayMessage: c.DisplayMessage,
		})
	}
	return out, nil
}

// AvailableTimes returns the free times for one period plus the custom
// fields a guest should fill in. Fields the widget sets itself are removed.
func (a *AvailabilityService) AvailableTimes(ctx context.Context, date string, people int, periodID string, onlineOnly bool) (models.TimeSlots, error) {
	out := models.TimeSlots{Times: []string{}, CustomFields: []json.RawMessage{}}
	res, err := a.hours.AvailableTimes(ctx, date, people, periodID, onlineOnly)
	if err != nil {
		return out, err
	}
	for _, p := range res {
		if periodID != "" && p.ID != "" && p.ID != periodID {
			continue
		}
		out.Times = append(out.Times, p.AvailableTimes...)
		for _, f := range p.ActiveCustomFields {
			if !a.isHidden(f) {
				out.CustomFields = append(out.CustomFields, f)
			}
		}
		break
	}
	return out, nil
}

func (a *AvailabilityService) isHidden(raw json.RawMessage) bool {
	var f struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(raw, &f); err != nil {
		return false
	}
	return a.hidden[f.ID]
}

// TimesForDates fills a multi-night picker. Invalid dates are skipped and at
// most maxDates are answered. Residents see closed-out periods and times
// that are not bookable online.
func (a *AvailabilityService) TimesForDates(ctx context.Context, dates []string, people int, resident bool) map[string]models.DateAvailability {
	out := make(map[string]models.DateAvailability)
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(4)
	seen := make(map[string]bool)
	for _, date := range dates {
		if len(seen) >= a.maxDates {
			break
		}
		if !utils.ValidDate(date) || seen[date] {
			continue
		}
		seen[date] = true

		date := date
		g.Go(func() error {
			day := a.dateAvailability(ctx, date, people, resident)
			mu.Lock()
			out[date] = day
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (a *AvailabilityService) dateAvailability(ctx context.Context, date string, people int, resident bool) models.DateAvailability {
	periods, err := a.OpeningPeriods(ctx, date)
	if err != nil {
		log.Printf("⚠️ TimesForDates %s: %v", date, err)
		return models.DateAvailability{Error: true, Periods: []models.OpeningPeriod{}}
	}

	for i := range periods {
		p := &periods[i]
		p.Times = []string{}
		if !resident && p.Closed() {
			continue
		}
		slots, err := a.AvailableTimes(ctx, date, people, p.ID, !resident)
		if err != nil {
			log.Printf("⚠️ TimesForDates %s period %s: %v", date, p.ID, err)
			continue
		}
		p.Times = slots.Times
	}
	return models.DateAvailability{Periods: periods}
}
