package models

import "encoding/json"

// OpeningHour is one service period as configured in the restaurant system.
type OpeningHour struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	From        FlexString      `json:"from"`
	To          FlexString      `json:"to"`
	IsSpecial   bool            `json:"isSpecial"`
	SpecialDate string          `json:"specialDate,omitempty"`
	ActiveDays  map[string]bool `json:"activeDays,omitempty"`
}

// PeriodTimes is the bookable-times answer for one period.
type PeriodTimes struct {
	ID                 string            `json:"_id"`
	AvailableTimes     []string          `json:"availableTimes"`
	ActiveCustomFields []json.RawMessage `json:"activeCustomFields,omitempty"`
}

// OpeningPeriod is a service period after closeout markers are parsed.
type OpeningPeriod struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	From           string   `json:"from"`
	To             string   `json:"to"`
	IsSpecial      bool     `json:"is_special"`
	ResidentOnly   bool     `json:"resident_only"`
	DisplayMessage *string  `json:"display_message"`
	Times          []string `json:"times,omitempty"`
}

// Closed reports whether a non-resident is shut out of this period.
func (p OpeningPeriod) Closed() bool {
	return p.ResidentOnly || p.DisplayMessage != nil
}

type TimeSlots struct {
	Times        []string          `json:"times"`
	CustomFields []json.RawMessage `json:"custom_fields"`
}

type DateAvailability struct {
	Error   bool            `json:"error"`
	Periods []OpeningPeriod `json:"periods"`
}
