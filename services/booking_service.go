// services/booking_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"table-booking/config"
	"table-booking/models"
	"table-booking/utils"
)

// BookingService handles the single-night booking form.
type BookingService struct {
	coordinator *BatchBookingCoordinator
	duplicates  *DuplicateChecker
	widget      config.WidgetConfig
	now         func() time.Time
}

func NewBookingService(coordinator *BatchBookingCoordinator, duplicates *DuplicateChecker, widget config.WidgetConfig) *BookingService {
	return &BookingService{coordinator: coordinator, duplicates: duplicates, widget: widget, now: time.Now}
}

// ValidateGuest applies the same checks the widget form does.
func ValidateGuest(g models.GuestIdentity) error {
	switch {
	case !utils.ValidName(g.Name):
		return fmt.Errorf("%w: name must be at least 2 characters", ErrInvalidGuest)
	case !utils.ValidEmail(g.Email):
		return fmt.Errorf("%w: email address is not valid", ErrInvalidGuest)
	case !utils.ValidPhone(g.Phone):
		return fmt.Errorf("%w: phone number is not valid", ErrInvalidGuest)
	}
	return nil
}

func (s *BookingService) validatePlan(plan models.NightPlan) error {
	if !utils.ValidDate(plan.Date) || !utils.ValidTime(plan.Time) || plan.People <= 0 {
		return ErrMissingFields
	}
	if s.widget.MaxPartySize > 0 && plan.People > s.widget.MaxPartySize {
		return fmt.Errorf("%w: maximum is %d", ErrPartyTooLarge, s.widget.MaxPartySize)
	}

	day, _ := time.ParseInLocation(models.DateLayout, plan.Date, time.Local)
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if day.Before(today) {
		return ErrOutsideWindow
	}
	if s.widget.MaxBookingWindowDays > 0 && day.After(today.AddDate(0, 0, s.widget.MaxBookingWindowDays)) {
		return ErrOutsideWindow
	}
	return nil
}

// CreateBooking validates, checks for a same-day duplicate unless allowed,
// then books. A duplicate is returned alongside ErrDuplicate.
func (s *BookingService) CreateBooking(ctx context.Context, plan models.NightPlan, guest models.GuestIdentity, allowDuplicate bool) (models.BatchEntryResult, *models.DuplicateCheck, error) {
	log.Printf("➡️ BookingService.CreateBooking date=%s people=%d guest=%s", plan.Date, plan.People, utils.MaskEmail(guest.Email))

	if err := ValidateGuest(guest); err != nil {
		return models.BatchEntryResult{Date: plan.Date}, nil, err
	}
	if err := s.validatePlan(plan); err != nil {
		return models.BatchEntryResult{Date: plan.Date}, nil, err
	}

	if !allowDuplicate && s.duplicates != nil {
		if dup := s.duplicates.Check(ctx, plan.Date, guest.Email, guest.Phone); dup.Duplicate {
			log.Printf("⚠️ BookingService.CreateBooking duplicate on %s", plan.Date)
			return models.BatchEntryResult{Date: plan.Date}, &dup, ErrDuplicate
		}
	}

	guest.Name = strings.TrimSpace(guest.Name)
	res := s.coordinator.SubmitBooking(ctx, plan, guest)
	if res.Success {
		publish(s.coordinator.Events, EventBookingCreated, map[string]any{
			"booking_id":      res.BookingID,
			"date":            res.Date,
			"people":          plan.People,
			"stay_booking_id": guest.ResidentBookingID,
		})
		log.Printf("⬅️ BookingService.CreateBooking ok id=%s", res.BookingID)
	}
	return res, nil, nil
}
