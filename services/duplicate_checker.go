package services

import (
	"context"
	"log"

	"table-booking/models"
	"table-booking/utils"
)

// DuplicateChecker warns when the same guest already holds a table that day.
type DuplicateChecker struct {
	reservations ReservationReader
}

func NewDuplicateChecker(reservations ReservationReader) *DuplicateChecker {
	return &DuplicateChecker{reservations: reservations}
}

// Check fails open: an upstream error reports no duplicate.
func (d *DuplicateChecker) Check(ctx context.Context, date, email, phone string) models.DuplicateCheck {
	bookings, err := d.reservations.BookingsForDate(ctx, date)
	if err != nil {
		log.Printf("⚠️ DuplicateChecker.Check: %v", err)
		return models.DuplicateCheck{}
	}
	for _, b := range bookings {
		if sameFold(b.GuestEmail, email) || samePhone(b.GuestPhone, phone) {
			log.Printf("⚠️ DuplicateChecker.Check %s already booked at %s for %s / %s", date, b.Time, utils.MaskEmail(email), utils.MaskPhone(phone))
			return models.DuplicateCheck{Duplicate: true, ExistingTime: b.Time, ExistingPeople: b.People}
		}
	}
	return models.DuplicateCheck{}
}
