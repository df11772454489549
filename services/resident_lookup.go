package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"table-booking/models"
)

// LinkFactors are the identity hints carried on a direct booking link.
// At least one must be present.
type LinkFactors struct {
	GuestID int
	Surname string
	Email   string
	Phone   string
}

func (f LinkFactors) empty() bool {
	return f.GuestID == 0 && strings.TrimSpace(f.Surname) == "" &&
		strings.TrimSpace(f.Email) == "" && strings.TrimSpace(f.Phone) == ""
}

// ResidentLookup resolves a resident who arrives from a link sent by the hotel.
type ResidentLookup struct {
	stays StayBookingGetter
}

func NewResidentLookup(stays StayBookingGetter) *ResidentLookup {
	return &ResidentLookup{stays: stays}
}

func (l *ResidentLookup) VerifyFromLink(ctx context.Context, bookingID int, f LinkFactors) (*models.ResidentInfo, error) {
	log.Printf("➡️ ResidentLookup.VerifyFromLink booking=%d", bookingID)
	if bookingID <= 0 {
		return nil, ErrStayNotFound
	}
	if f.empty() {
		return nil, ErrFactorRequired
	}

	rec, err := l.stays.StayBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrStayNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("lookup stay %d: %w", bookingID, err)
	}
	if !rec.Active() {
		return nil, ErrStayCancelled
	}

	for _, g := range rec.Guests {
		if !linkMatches(g, f) {
			continue
		}
		info := &models.ResidentInfo{
			GuestName:  g.FullName(),
			GuestEmail: g.Email,
			GuestPhone: g.Phone,
			Room:       rec.RoomLabel,
			CheckIn:    rec.CheckIn,
			CheckOut:   rec.CheckOut,
			Nights:     rec.Nights,
			BookingID:  rec.BookingID,
			Occupancy:  rec.Occupancy,
			GroupID:    rec.GroupID,
		}
		log.Printf("⬅️ ResidentLookup.VerifyFromLink booking=%d ok", bookingID)
		return info, nil
	}
	return nil, ErrNotVerified
}

func linkMatches(g models.GuestCandidate, f LinkFactors) bool {
	switch {
	case f.GuestID != 0 && g.GuestID == f.GuestID:
		return true
	case sameFold(g.LastName, f.Surname):
		return true
	case sameFold(g.Email, f.Email):
		return true
	case samePhone(g.Phone, f.Phone):
		return true
	}
	return false
}

// ParseLinkID reads an id from a link parameter; junk yields 0.
func ParseLinkID(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
