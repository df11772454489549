package models

// NightPlan is one restaurant booking to make for one night.
type NightPlan struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	People     int    `json:"people"`
	PeriodID   string `json:"period_id,omitempty"`
	PeriodName string `json:"period_name,omitempty"`
}

type NightStatus string

const (
	NightPending       NightStatus = "pending"
	NightSelected      NightStatus = "selected"
	NightNoTable       NightStatus = "no_table"
	NightAlreadyBooked NightStatus = "already_booked"
)

// GuestIdentity is who the restaurant bookings are made for.
type GuestIdentity struct {
	Name              string             `json:"name"`
	Email             string             `json:"email"`
	Phone             string             `json:"phone,omitempty"`
	Notes             string             `json:"notes,omitempty"`
	ResidentBookingID int                `json:"resident_booking_id,omitempty"`
	CustomFields      []CustomFieldValue `json:"custom_fields,omitempty"`
}

type BatchEntryResult struct {
	Date      string `json:"date"`
	Success   bool   `json:"success"`
	BookingID string `json:"booking_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NoTableOutcome reports the courtesy annotation. A failure is never an error for the caller.
type NoTableOutcome struct {
	Dates     []string `json:"dates"`
	Attempted bool     `json:"attempted"`
	Success   bool     `json:"success"`
}

type StayPlanOutcome struct {
	Results []BatchEntryResult `json:"results"`
	NoTable NoTableOutcome     `json:"no_table"`
}
