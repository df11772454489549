package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"table-booking/models"
)

func groupStay(id, group, occupancy int) models.StayRecord {
	r := stay(id, "G", "Guest", "", "")
	r.GroupID = intPtr(group)
	r.Occupancy = occupancy
	return r
}

func refBooking(ref string, people int) models.Reservation {
	return models.Reservation{People: people, CustomFields: []models.CustomFieldValue{{ID: "refField", Value: ref}}}
}

func TestCheckGroupNilGroupMakesNoCalls(t *testing.T) {
	stays := &fakeStays{}
	res := &fakeReservations{}
	g := NewGroupCoordinator(stays, res, "refField")

	out := g.CheckGroup(context.Background(), day, 1, nil, 4)
	assert.False(t, out.IsGroup)
	assert.Equal(t, 0, stays.calls)
	assert.Equal(t, 0, res.readCalls)

	out = g.CheckGroup(context.Background(), day, 1, intPtr(0), 4)
	assert.False(t, out.IsGroup)
	assert.Equal(t, 0, stays.calls)
}

func TestCheckGroupSingleMemberIsNotGroup(t *testing.T) {
	stays := &fakeStays{recs: map[string][]models.StayRecord{day: {groupStay(1, 7, 2), groupStay(2, 8, 2)}}}
	g := NewGroupCoordinator(stays, &fakeReservations{}, "refField")

	assert.False(t, g.CheckGroup(context.Background(), day, 1, intPtr(7), 2).IsGroup)
}

func TestCheckGroupIgnoresCancelledMembers(t *testing.T) {
	cancelled := groupStay(2, 7, 2)
	cancelled.Status = models.StayCancelled
	stays := &fakeStays{recs: map[string][]models.StayRecord{day: {groupStay(1, 7, 2), cancelled}}}
	g := NewGroupCoordinator(stays, &fakeReservations{}, "refField")

	assert.False(t, g.CheckGroup(context.Background(), day, 1, intPtr(7), 2).IsGroup)
}

func TestCheckGroupFindsOtherMembersTables(t *testing.T) {
	stays := &fakeStays{recs: map[string][]models.StayRecord{day: {
		groupStay(1, 7, 2), groupStay(2, 7, 3), groupStay(3, 7, 1), groupStay(4, 9, 2),
	}}}
	res := &fakeReservations{byDate: map[string][]models.Reservation{day: {
		refBooking("2", 5),
		refBooking("1", 2),
		refBooking("4", 2),
		{People: 6},
	}}}
	g := NewGroupCoordinator(stays, res, "refField")

	out := g.CheckGroup(context.Background(), day, 1, intPtr(7), 2)
	require.True(t, out.IsGroup)
	assert.Equal(t, 3, out.GroupSize)
	assert.Equal(t, 6, out.TotalGroupOccupancy)
	assert.Equal(t, 2, out.ThisGuestOccupancy)
	assert.Equal(t, []models.ExistingTable{{StayBookingRef: "2", Covers: 5}}, out.ExistingTables)
}

func TestCheckGroupStaysGroupWhenReservationsFail(t *testing.T) {
	stays := &fakeStays{recs: map[string][]models.StayRecord{day: {groupStay(1, 7, 2), groupStay(2, 7, 2)}}}
	g := NewGroupCoordinator(stays, &fakeReservations{readErr: errBoom}, "refField")

	out := g.CheckGroup(context.Background(), day, 1, intPtr(7), 4)
	assert.True(t, out.IsGroup)
	assert.Empty(t, out.ExistingTables)
}

func TestCheckGroupStayListFailure(t *testing.T) {
	g := NewGroupCoordinator(&fakeStays{err: errBoom}, &fakeReservations{}, "refField")
	assert.False(t, g.CheckGroup(context.Background(), day, 1, intPtr(7), 4).IsGroup)
}
