package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIntAcceptsNumbersAndStrings(t *testing.T) {
	var v struct {
		A FlexInt `json:"a"`
		B FlexInt `json:"b"`
		C FlexInt `json:"c"`
		D FlexInt `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 12, "b": "34", "c": "", "d": null}`), &v))
	assert.Equal(t, FlexInt(12), v.A)
	assert.Equal(t, FlexInt(34), v.B)
	assert.Equal(t, FlexInt(0), v.C)
	assert.Equal(t, FlexInt(0), v.D)
}

func TestFlexStringAcceptsNumbers(t *testing.T) {
	var v struct {
		From FlexString `json:"from"`
		To   FlexString `json:"to"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"from": 1800, "to": "21:30"}`), &v))
	assert.Equal(t, FlexString("1800"), v.From)
	assert.Equal(t, FlexString("21:30"), v.To)
}

func TestPrimaryGuest(t *testing.T) {
	rec := StayRecord{Guests: []GuestCandidate{{FirstName: "A"}, {FirstName: "B", IsPrimary: true}}}
	require.NotNil(t, rec.Primary())
	assert.Equal(t, "B", rec.Primary().FirstName)

	rec = StayRecord{Guests: []GuestCandidate{{FirstName: "A"}, {FirstName: "B"}}}
	assert.Equal(t, "A", rec.Primary().FirstName)

	assert.Nil(t, (&StayRecord{}).Primary())
}

func TestMatchResponseHidesStayDetailsBelowTierOne(t *testing.T) {
	rec := &StayRecord{BookingID: 7, RoomLabel: "12", Guests: []GuestCandidate{{FirstName: "Jane", LastName: "Smith"}}}

	exact := MatchResult{Tier: TierExact, Record: rec}.Response()
	require.NotNil(t, exact.ResidentSummary)
	assert.Equal(t, 7, exact.BookingID)
	assert.Equal(t, "Jane Smith", exact.GuestName)

	surname := MatchResult{Tier: TierSurname, Record: rec, PhoneOnFile: true}.Response()
	assert.Nil(t, surname.ResidentSummary)
	require.NotNil(t, surname.PhoneOnFile)
	assert.True(t, *surname.PhoneOnFile)

	b, err := json.Marshal(surname)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "room")
}

func TestGroupScenario(t *testing.T) {
	g := GroupCheckResult{IsGroup: true, GroupSize: 3, TotalGroupOccupancy: 6, ThisGuestOccupancy: 2, ExistingTables: []ExistingTable{}}

	assert.Equal(t, ScenarioOwnRoomOnly, g.Scenario(2))
	assert.Equal(t, NoteBookingSeparately, g.Scenario(2).SuggestedNote())
	assert.Equal(t, ScenarioWholeGroup, g.Scenario(3))
	assert.Equal(t, ScenarioWholeGroup, g.Scenario(6))
	assert.Equal(t, NoteWholeGroup, g.Scenario(6).SuggestedNote())

	assert.Equal(t, ScenarioNotGroup, NotAGroup().Scenario(4))
	assert.Empty(t, ScenarioNotGroup.SuggestedNote())
}

func TestGroupScenarioWithExistingTables(t *testing.T) {
	g := GroupCheckResult{IsGroup: true, GroupSize: 3, TotalGroupOccupancy: 6, ThisGuestOccupancy: 2}

	// each member booked for their own room
	g.ExistingTables = []ExistingTable{{StayBookingRef: "2", Covers: 2}, {StayBookingRef: "3", Covers: 1}}
	assert.Equal(t, ScenarioMembersSeparate, g.Scenario(2))
	assert.Equal(t, ScenarioMembersSeparate, g.Scenario(6))
	assert.Equal(t, NoteBookingSeparately, g.Scenario(2).SuggestedNote())

	// one table is bigger than this guest's room
	g.ExistingTables = append(g.ExistingTables, ExistingTable{StayBookingRef: "4", Covers: 5})
	assert.Equal(t, ScenarioGroupTableBooked, g.Scenario(2))
	assert.Equal(t, NoteGroupTableBooked, g.Scenario(2).SuggestedNote())
}

func TestReservationFieldValue(t *testing.T) {
	r := Reservation{CustomFields: []CustomFieldValue{
		{ID: "ref", Value: " 4411 "},
		{ID: "num", Value: float64(12)},
		{ID: "multi", Value: []any{"x"}},
	}}
	assert.Equal(t, "4411", r.FieldValue("ref"))
	assert.Equal(t, "12", r.FieldValue("num"))
	assert.Equal(t, "", r.FieldValue("multi"))
	assert.Equal(t, "", r.FieldValue(""))
}
