package models

type MatchTier int

const (
	TierUnavailable MatchTier = 0
	TierExact       MatchTier = 1
	TierSurname     MatchTier = 2
	TierNone        MatchTier = 3
)

func (t MatchTier) String() string {
	switch t {
	case TierUnavailable:
		return "unavailable"
	case TierExact:
		return "exact"
	case TierSurname:
		return "surname"
	case TierNone:
		return "none"
	}
	return "unknown"
}

// MatchResult is the outcome of matching a diner against the staying list.
// Record is set for tiers 1 and 2 only.
type MatchResult struct {
	Tier        MatchTier
	Record      *StayRecord
	PhoneOnFile bool
	Message     string

	// UnverifiedReference carries a reference the guest typed that could not be checked.
	UnverifiedReference string
}

func (m MatchResult) BookingID() int {
	if m.Record == nil {
		return 0
	}
	return m.Record.BookingID
}

// MatchResponse is the widget-facing shape of a MatchResult.
type MatchResponse struct {
	Tier                MatchTier `json:"match_tier"`
	Message             string    `json:"message,omitempty"`
	PhoneOnFile         *bool     `json:"phone_on_file,omitempty"`
	UnverifiedReference string    `json:"unverified_reference,omitempty"`
	*ResidentSummary
}

func (m MatchResult) Response() MatchResponse {
	resp := MatchResponse{Tier: m.Tier, Message: m.Message, UnverifiedReference: m.UnverifiedReference}
	switch m.Tier {
	case TierExact:
		resp.ResidentSummary = SummaryOf(m.Record)
	case TierSurname:
		onFile := m.PhoneOnFile
		resp.PhoneOnFile = &onFile
	}
	return resp
}

type PhoneVerifyResult struct {
	Verified bool        `json:"verified"`
	Record   *StayRecord `json:"-"`
}

type ReferenceVerifyResult struct {
	Verified   bool        `json:"verified"`
	Record     *StayRecord `json:"-"`
	AgentMatch bool        `json:"ota_match,omitempty"`
	AgentName  string      `json:"travel_agent_name,omitempty"`
	InternalID int         `json:"internal_booking_id,omitempty"`
}

type PhoneVerifyResponse struct {
	Verified bool             `json:"verified"`
	Resident *ResidentSummary `json:"resident,omitempty"`
}

func (r PhoneVerifyResult) Response() PhoneVerifyResponse {
	out := PhoneVerifyResponse{Verified: r.Verified}
	if r.Verified {
		out.Resident = SummaryOf(r.Record)
	}
	return out
}

type ReferenceVerifyResponse struct {
	Verified   bool             `json:"verified"`
	AgentMatch bool             `json:"ota_match"`
	AgentName  string           `json:"travel_agent_name,omitempty"`
	InternalID int              `json:"internal_booking_id,omitempty"`
	Resident   *ResidentSummary `json:"resident,omitempty"`
}

func (r ReferenceVerifyResult) Response() ReferenceVerifyResponse {
	out := ReferenceVerifyResponse{
		Verified:   r.Verified,
		AgentMatch: r.AgentMatch,
		AgentName:  r.AgentName,
		InternalID: r.InternalID,
	}
	if r.Verified {
		out.Resident = SummaryOf(r.Record)
	}
	return out
}

// RecordFromSummary rebuilds the parts of a stay a summary carries.
func RecordFromSummary(s *ResidentSummary) *StayRecord {
	if s == nil {
		return nil
	}
	return &StayRecord{
		BookingID:     s.BookingID,
		ReferenceCode: s.BookingReferenceID,
		RoomLabel:     s.Room,
		CheckIn:       s.CheckIn,
		CheckOut:      s.CheckOut,
		Nights:        s.Nights,
		Occupancy:     s.Occupancy,
		GroupID:       s.GroupID,
		Status:        StayActive,
	}
}
