package models

import (
	"time"

	"gorm.io/datatypes"
)

// BookingBatch records one multi-night submission and its per-night outcome.
type BookingBatch struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	BatchID       string         `gorm:"column:batch_id;size:36;uniqueIndex" json:"batch_id"`
	StayBookingID *int           `gorm:"column:stay_booking_id;index" json:"stay_booking_id,omitempty"`
	GuestEmail    string         `gorm:"column:guest_email;size:150" json:"guest_email"`
	Nights        int            `gorm:"column:nights" json:"nights"`
	Succeeded     int            `gorm:"column:succeeded" json:"succeeded"`
	Results       datatypes.JSON `gorm:"column:results" json:"results"`
	CreatedAt     time.Time      `json:"created_at"`
}

// NoTableMark remembers which nights a resident said they need no table.
type NoTableMark struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	StayBookingID int            `gorm:"column:stay_booking_id;uniqueIndex" json:"stay_booking_id"`
	Dates         datatypes.JSON `gorm:"column:dates" json:"dates"`
	Synced        bool           `gorm:"column:synced;default:false" json:"synced"`
	SyncError     string         `gorm:"column:sync_error;size:255" json:"sync_error,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// MatchAudit keeps the outcome of each resident check, without guest details.
type MatchAudit struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Date          string    `gorm:"column:date;size:10;index" json:"date"`
	Source        string    `gorm:"column:source;size:32" json:"source"`
	Tier          int       `gorm:"column:tier" json:"tier"`
	StayBookingID *int      `gorm:"column:stay_booking_id" json:"stay_booking_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
