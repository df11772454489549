package models

import (
	"fmt"
	"strings"
)

// CustomFieldValue is a custom field as attached to a restaurant booking.
type CustomFieldValue struct {
	ID                      string `json:"_id"`
	Name                    string `json:"name,omitempty"`
	Value                   any    `json:"value"`
	MultipleChoiceValueName string `json:"multipleChoiceValueName,omitempty"`
}

// StringValue flattens scalar values; anything else yields "".
func (f CustomFieldValue) StringValue() string {
	switch v := f.Value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strings.TrimSpace(fmt.Sprintf("%.0f", v))
	case int:
		return fmt.Sprintf("%d", v)
	}
	return ""
}

// Reservation is an existing restaurant booking.
type Reservation struct {
	ID           string             `json:"_id"`
	Date         string             `json:"date"`
	Time         string             `json:"time"`
	People       int                `json:"people"`
	GuestName    string             `json:"-"`
	GuestEmail   string             `json:"-"`
	GuestPhone   string             `json:"-"`
	CustomFields []CustomFieldValue `json:"customFields"`
}

// FieldValue returns the string value of the custom field with the given id.
func (r Reservation) FieldValue(fieldID string) string {
	if fieldID == "" {
		return ""
	}
	for _, f := range r.CustomFields {
		if f.ID == fieldID {
			return f.StringValue()
		}
	}
	return ""
}

type BookingGuest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	NotificationEmail bool   `json:"notificationEmail"`
	Phone             string `json:"phone,omitempty"`
}

// BookingPayload is the body sent to create one restaurant booking.
type BookingPayload struct {
	Date             string             `json:"date"`
	Time             string             `json:"time"`
	People           int                `json:"people"`
	Guest            BookingGuest       `json:"guest"`
	SendNotification bool               `json:"sendNotification"`
	Source           string             `json:"source"`
	Notes            string             `json:"notes,omitempty"`
	CustomFields     []CustomFieldValue `json:"customFields,omitempty"`
}

type DuplicateCheck struct {
	Duplicate      bool   `json:"duplicate"`
	ExistingTime   string `json:"existing_time,omitempty"`
	ExistingPeople int    `json:"existing_people,omitempty"`
}
