// services/group_coordinator.go
package services

import (
	"context"
	"log"
	"strconv"

	"table-booking/models"
)

// GroupCoordinator spots stays travelling together and the tables they already hold.
type GroupCoordinator struct {
	stays             StayRecords
	reservations      ReservationReader
	bookingRefFieldID string
}

func NewGroupCoordinator(stays StayRecords, reservations ReservationReader, bookingRefFieldID string) *GroupCoordinator {
	return &GroupCoordinator{stays: stays, reservations: reservations, bookingRefFieldID: bookingRefFieldID}
}

// CheckGroup never fails: any upstream problem degrades to "not a group"
// or to an empty existing-table list.
func (g *GroupCoordinator) CheckGroup(ctx context.Context, date string, bookingID int, groupID *int, proposedCovers int) models.GroupCheckResult {
	if groupID == nil || *groupID == 0 {
		return models.NotAGroup()
	}

	recs, err := g.stays.Records(ctx, date)
	if err != nil {
		log.Printf("⚠️ GroupCoordinator.CheckGroup: %v", err)
		return models.NotAGroup()
	}

	var members []models.StayRecord
	for _, rec := range recs {
		if rec.Active() && rec.InGroup(*groupID) {
			members = append(members, rec)
		}
	}
	if len(members) < 2 {
		return models.NotAGroup()
	}

	res := models.GroupCheckResult{IsGroup: true, GroupSize: len(members), ExistingTables: []models.ExistingTable{}}
	others := make(map[string]bool, len(members))
	for _, m := range members {
		res.TotalGroupOccupancy += m.Occupancy
		if m.BookingID == bookingID {
			res.ThisGuestOccupancy = m.Occupancy
			continue
		}
		others[strconv.Itoa(m.BookingID)] = true
	}

	res.ExistingTables = g.existingTables(ctx, date, others)
	log.Printf("⬅️ GroupCoordinator.CheckGroup group=%d size=%d tables=%d covers=%d",
		*groupID, res.GroupSize, len(res.ExistingTables), proposedCovers)
	return res
}

func (g *GroupCoordinator) existingTables(ctx context.Context, date string, others map[string]bool) []models.ExistingTable {
	out := []models.ExistingTable{}
	if g.reservations == nil || g.bookingRefFieldID == "" || len(others) == 0 {
		return out
	}

	bookings, err := g.reservations.BookingsForDate(ctx, date)
	if err != nil {
		log.Printf("⚠️ GroupCoordinator.existingTables: %v", err)
		return out
	}
	for _, b := range bookings {
		ref := b.FieldValue(g.bookingRefFieldID)
		if ref != "" && others[ref] {
			out = append(out, models.ExistingTable{StayBookingRef: ref, Covers: b.People})
		}
	}
	return out
}
