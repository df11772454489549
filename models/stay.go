package models

// DateLayout is the calendar-date format used on every wire and cache key.
const DateLayout = "2006-01-02"

type StayStatus string

const (
	StayActive    StayStatus = "active"
	StayCancelled StayStatus = "cancelled"
)

// GuestCandidate is one named guest attached to a stay.
type GuestCandidate struct {
	GuestID   int    `json:"guest_id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsPrimary bool   `json:"is_primary"`
}

func (g GuestCandidate) FullName() string {
	switch {
	case g.FirstName == "":
		return g.LastName
	case g.LastName == "":
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}

// StayRecord is a hotel stay as read from the stay system.
type StayRecord struct {
	BookingID       int              `json:"booking_id"`
	Guests          []GuestCandidate `json:"guests"`
	CheckIn         string           `json:"check_in"`
	CheckOut        string           `json:"check_out"`
	Nights          []string         `json:"nights"`
	RoomLabel       string           `json:"room"`
	GroupID         *int             `json:"group_id,omitempty"`
	Status          StayStatus       `json:"status"`
	ReferenceCode   string           `json:"booking_reference_id,omitempty"`
	TravelAgentName string           `json:"travel_agent_name,omitempty"`
	ViaAgent        bool             `json:"via_agent,omitempty"`
	Occupancy       int              `json:"occupancy"`
}

func (s StayRecord) Active() bool {
	return s.Status != StayCancelled
}

// Primary returns the guest flagged primary, else the first guest, else nil.
func (s *StayRecord) Primary() *GuestCandidate {
	for i := range s.Guests {
		if s.Guests[i].IsPrimary {
			return &s.Guests[i]
		}
	}
	if len(s.Guests) > 0 {
		return &s.Guests[0]
	}
	return nil
}

func (s StayRecord) InGroup(groupID int) bool {
	return groupID != 0 && s.GroupID != nil && *s.GroupID == groupID
}

// ResidentSummary is the part of a stay that is safe to return to the widget.
type ResidentSummary struct {
	BookingID          int      `json:"booking_id"`
	BookingReferenceID string   `json:"booking_reference_id,omitempty"`
	GuestName          string   `json:"guest_name,omitempty"`
	Room               string   `json:"room,omitempty"`
	CheckIn            string   `json:"check_in"`
	CheckOut           string   `json:"check_out"`
	Nights             []string `json:"nights"`
	Occupancy          int      `json:"occupancy"`
	GroupID            *int     `json:"group_id,omitempty"`
}

func SummaryOf(rec *StayRecord) *ResidentSummary {
	if rec == nil {
		return nil
	}
	sum := &ResidentSummary{
		BookingID:          rec.BookingID,
		BookingReferenceID: rec.ReferenceCode,
		Room:               rec.RoomLabel,
		CheckIn:            rec.CheckIn,
		CheckOut:           rec.CheckOut,
		Nights:             rec.Nights,
		Occupancy:          rec.Occupancy,
		GroupID:            rec.GroupID,
	}
	if p := rec.Primary(); p != nil {
		sum.GuestName = p.FullName()
	}
	return sum
}

// ResidentInfo is returned when a guest arrives through a direct link.
type ResidentInfo struct {
	GuestName  string   `json:"guest_name"`
	GuestEmail string   `json:"guest_email"`
	GuestPhone string   `json:"guest_phone"`
	Room       string   `json:"room"`
	CheckIn    string   `json:"check_in"`
	CheckOut   string   `json:"check_out"`
	Nights     []string `json:"nights"`
	BookingID  int      `json:"booking_id"`
	Occupancy  int      `json:"occupancy"`
	GroupID    *int     `json:"group_id,omitempty"`
}
