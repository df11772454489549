// services/batch_booking.go
package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"table-booking/config"
	"table-booking/models"
	"table-booking/utils"
)

// BatchStore keeps a record of what was submitted.
type BatchStore interface {
	SaveBatch(ctx context.Context, batchID string, guest models.GuestIdentity, results []models.BatchEntryResult) error
	SaveNoTableMark(ctx context.Context, stayID int, dates []string, syncErr error) error
}

const batchConcurrency = 4

// BatchBookingCoordinator makes restaurant bookings for one or more nights.
// Nights are independent: one failing never undoes another.
type BatchBookingCoordinator struct {
	reservations ReservationWriter
	annotator    StayAnnotator
	widget       config.WidgetConfig
	maxNights    int

	Store  BatchStore
	Events EventPublisher
}

func NewBatchBookingCoordinator(reservations ReservationWriter, annotator StayAnnotator, widget config.WidgetConfig, maxNights int) *BatchBookingCoordinator {
	if maxNights <= 0 {
		maxNights = 14
	}
	return &BatchBookingCoordinator{
		reservations: reservations,
		annotator:    annotator,
		widget:       widget,
		maxNights:    maxNights,
	}
}

// SubmitBooking creates one booking. Failures are returned in the result.
func (c *BatchBookingCoordinator) SubmitBooking(ctx context.Context, plan models.NightPlan, guest models.GuestIdentity) models.BatchEntryResult {
	out := models.BatchEntryResult{Date: plan.Date}
	if strings.TrimSpace(plan.Date) == "" || strings.TrimSpace(plan.Time) == "" || plan.People <= 0 {
		out.Error = ErrMissingFields.Error()
		return out
	}

	id, err := c.reservations.CreateBooking(ctx, c.payload(plan, guest))
	if err != nil {
		log.Printf("❌ SubmitBooking %s %s for %s / %s: %v", plan.Date, plan.Time, utils.MaskEmail(guest.Email), utils.MaskPhone(guest.Phone), err)
		out.Error = err.Error()
		return out
	}
	out.Success = true
	out.BookingID = id
	return out
}

func (c *BatchBookingCoordinator) payload(plan models.NightPlan, guest models.GuestIdentity) models.BookingPayload {
	return models.BookingPayload{
		Date:   plan.Date,
		Time:   strings.TrimSpace(plan.Time),
		People: plan.People,
		Guest: models.BookingGuest{
			Name:              strings.TrimSpace(guest.Name),
			Email:             strings.TrimSpace(guest.Email),
			NotificationEmail: true,
			Phone:             strings.TrimSpace(guest.Phone),
		},
		SendNotification: true,
		Source:           "website",
		Notes:            strings.TrimSpace(guest.Notes),
		CustomFields:     c.customFields(guest),
	}
}

// customFields merges the guest's fields with the resident markers.
// Resident markers win when ids collide.
func (c *BatchBookingCoordinator) customFields(guest models.GuestIdentity) []models.CustomFieldValue {
	var resident []models.CustomFieldValue
	if guest.ResidentBookingID != 0 {
		if c.widget.HotelGuestFieldID != "" {
			resident = append(resident, models.CustomFieldValue{
				ID:                      c.widget.HotelGuestFieldID,
				Name:                    "Hotel Guest",
				Value:                   c.widget.HotelGuestYesChoice,
				MultipleChoiceValueName: "Yes",
			})
		}
		if c.widget.BookingRefFieldID != "" {
			resident = append(resident, models.CustomFieldValue{
				ID:    c.widget.BookingRefFieldID,
				Name:  "Booking #",
				Value: bookingIDString(guest.ResidentBookingID),
			})
		}
	}

	taken := make(map[string]bool, len(resident))
	for _, f := range resident {
		taken[f.ID] = true
	}
	out := make([]models.CustomFieldValue, 0, len(guest.CustomFields)+len(resident))
	for _, f := range guest.CustomFields {
		if f.ID == "" || taken[f.ID] {
			continue
		}
		out = append(out, f)
	}
	return append(out, resident...)
}

// SubmitBatch runs each night as its own task and returns results in plan order.
func (c *BatchBookingCoordinator) SubmitBatch(ctx context.Context, plans []models.NightPlan, guest models.GuestIdentity) ([]models.BatchEntryResult, error) {
	if len(plans) == 0 {
		return nil, ErrNothingToSubmit
	}
	if len(plans) > c.maxNights {
		return nil, fmt.Errorf("%w: at most %d", ErrTooManyNights, c.maxNights)
	}
	log.Printf("➡️ SubmitBatch nights=%d guest=%s", len(plans), utils.MaskEmail(guest.Email))

	results := make([]models.BatchEntryResult, len(plans))
	var g errgroup.Group
	g.SetLimit(batchConcurrency)
	for i, plan := range plans {
		i, plan := i, plan
		g.Go(func() error {
			results[i] = c.SubmitBooking(ctx, plan, guest)
			return nil
		})
	}
	_ = g.Wait()

	batchID := uuid.NewString()
	if c.Store != nil {
		if err := c.Store.SaveBatch(ctx, batchID, guest, results); err != nil {
			log.Printf("⚠️ SubmitBatch save %s: %v", batchID, err)
		}
	}
	publish(c.Events, EventBatchSubmitted, map[string]any{
		"batch_id":        batchID,
		"stay_booking_id": guest.ResidentBookingID,
		"results":         results,
	})

	ok := 0
	for _, r := range results {
		if r.Success {
			ok++
		}
	}
	log.Printf("⬅️ SubmitBatch %s ok=%d/%d", batchID, ok, len(results))
	return results, nil
}

// MarkNoTable writes the no-table nights onto the stay for staff to see.
func (c *BatchBookingCoordinator) MarkNoTable(ctx context.Context, stayID int, dates []string) error {
	if stayID <= 0 {
		return ErrStayNotFound
	}
	if len(dates) == 0 {
		return nil
	}

	sorted := append([]string(nil), dates...)
	sort.Strings(sorted)

	value := "No table needed: " + strings.Join(sorted, ", ")
	err := c.annotator.SetCustomField(ctx, stayID, c.noTableField(), value)
	if c.Store != nil {
		if serr := c.Store.SaveNoTableMark(ctx, stayID, sorted, err); serr != nil {
			log.Printf("⚠️ MarkNoTable save %d: %v", stayID, serr)
		}
	}
	if err != nil {
		return fmt.Errorf("mark no table on stay %d: %w", stayID, err)
	}
	publish(c.Events, EventNoTableMarked, map[string]any{"stay_booking_id": stayID, "dates": sorted})
	return nil
}

func (c *BatchBookingCoordinator) noTableField() string {
	if c.widget.NoTableFieldName != "" {
		return c.widget.NoTableFieldName
	}
	return "Restaurant Status"
}

// PlanAndSubmitStay books the selected nights then annotates the no-table
// nights. The annotation is best effort and its failure is only logged.
func (c *BatchBookingCoordinator) PlanAndSubmitStay(ctx context.Context, plans []models.NightPlan, noTableDates []string, guest models.GuestIdentity) (models.StayPlanOutcome, error) {
	out := models.StayPlanOutcome{Results: []models.BatchEntryResult{}, NoTable: models.NoTableOutcome{Dates: []string{}}}
	if len(plans) == 0 && len(noTableDates) == 0 {
		return out, ErrNothingToSubmit
	}

	if len(plans) > 0 {
		results, err := c.SubmitBatch(ctx, plans, guest)
		if err != nil {
			return out, err
		}
		out.Results = results
	}

	if len(noTableDates) > 0 {
		out.NoTable.Dates = noTableDates
		out.NoTable.Attempted = true
		if err := c.MarkNoTable(ctx, guest.ResidentBookingID, noTableDates); err != nil {
			log.Printf("⚠️ PlanAndSubmitStay no-table: %v", err)
		} else {
			out.NoTable.Success = true
		}
	}
	return out, nil
}
