package models

// ExistingTable is a restaurant booking already held by another member of the group.
type ExistingTable struct {
	StayBookingRef string `json:"newbook_booking_id"`
	Covers         int    `json:"covers"`
}

type GroupCheckResult struct {
	IsGroup             bool            `json:"is_group"`
	GroupSize           int             `json:"group_size,omitempty"`
	TotalGroupOccupancy int             `json:"group_occupancy_total,omitempty"`
	ThisGuestOccupancy  int             `json:"guest_occupancy,omitempty"`
	ExistingTables      []ExistingTable `json:"existing_tables"`
}

func NotAGroup() GroupCheckResult {
	return GroupCheckResult{ExistingTables: []ExistingTable{}}
}

// GroupScenario describes how a proposed party size relates to the group.
type GroupScenario string

const (
	ScenarioNotGroup         GroupScenario = "not_group"
	ScenarioGroupTableBooked GroupScenario = "group_table_booked"
	ScenarioMembersSeparate  GroupScenario = "members_booked_separately"
	ScenarioWholeGroup       GroupScenario = "whole_group"
	ScenarioOwnRoomOnly      GroupScenario = "own_room_only"
)

const (
	NoteGroupTableBooked  = "Part of group - other members may already have tables booked"
	NoteBookingSeparately = "Guest says other group members booking separately"
	NoteWholeGroup        = "Guest confirmed booking is for their group"
)

// Scenario classifies a proposed cover count. An existing table larger than
// this guest's own occupancy was probably booked for the whole group.
func (g GroupCheckResult) Scenario(proposedCovers int) GroupScenario {
	if !g.IsGroup {
		return ScenarioNotGroup
	}
	if len(g.ExistingTables) > 0 {
		for _, t := range g.ExistingTables {
			if t.Covers > g.ThisGuestOccupancy {
				return ScenarioGroupTableBooked
			}
		}
		return ScenarioMembersSeparate
	}
	if proposedCovers > g.ThisGuestOccupancy {
		return ScenarioWholeGroup
	}
	return ScenarioOwnRoomOnly
}

// SuggestedNote is the booking note a widget attaches once the guest confirms.
func (s GroupScenario) SuggestedNote() string {
	switch s {
	case ScenarioGroupTableBooked:
		return NoteGroupTableBooked
	case ScenarioMembersSeparate, ScenarioOwnRoomOnly:
		return NoteBookingSeparately
	case ScenarioWholeGroup:
		return NoteWholeGroup
	}
	return ""
}
