// services/audit_store.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"table-booking/models"
)

// AuditStore persists batch outcomes, no-table marks and match tiers.
// A nil store or one without a DB is a no-op.
type AuditStore struct {
	DB *gorm.DB
}

func NewAuditStore(db *gorm.DB) *AuditStore {
	return &AuditStore{DB: db}
}

func (s *AuditStore) enabled() bool {
	return s != nil && s.DB != nil
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate")
}

// RecordMatch stores the tier reached for a date. Guest details are not kept.
func (s *AuditStore) RecordMatch(ctx context.Context, date, source string, result models.MatchResult) {
	if !s.enabled() {
		return
	}
	row := models.MatchAudit{Date: date, Source: source, Tier: int(result.Tier)}
	if id := result.BookingID(); id != 0 {
		row.StayBookingID = &id
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("⚠️ AuditStore.RecordMatch: %v", err)
	}
}

func (s *AuditStore) SaveBatch(ctx context.Context, batchID string, guest models.GuestIdentity, results []models.BatchEntryResult) error {
	if !s.enabled() {
		return nil
	}

	b, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode batch results: %w", err)
	}
	row := models.BookingBatch{
		BatchID:    batchID,
		GuestEmail: strings.ToLower(strings.TrimSpace(guest.Email)),
		Nights:     len(results),
		Results:    datatypes.JSON(b),
	}
	if guest.ResidentBookingID != 0 {
		id := guest.ResidentBookingID
		row.StayBookingID = &id
	}
	for _, r := range results {
		if r.Success {
			row.Succeeded++
		}
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("save batch %s: %w", batchID, err)
	}
	return nil
}

// SaveNoTableMark upserts the no-table nights for a stay.
func (s *AuditStore) SaveNoTableMark(ctx context.Context, stayID int, dates []string, syncErr error) error {
	if !s.enabled() {
		return nil
	}

	b, err := json.Marshal(dates)
	if err != nil {
		return fmt.Errorf("encode no-table dates: %w", err)
	}
	mark := models.NoTableMark{
		StayBookingID: stayID,
		Dates:         datatypes.JSON(b),
		Synced:        syncErr == nil,
	}
	if syncErr != nil {
		mark.SyncError = truncate(syncErr.Error(), 255)
	}

	db := s.DB.WithContext(ctx)
	var existing models.NoTableMark
	err = db.Where("stay_booking_id = ?", stayID).First(&existing).Error
	switch {
	case err == nil:
		return s.updateMark(db, existing.ID, mark)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("load no-table mark %d: %w", stayID, err)
	}

	if err := db.Create(&mark).Error; err != nil {
		if isDuplicateKey(err) {
			// created concurrently; overwrite it
			if ferr := db.Where("stay_booking_id = ?", stayID).First(&existing).Error; ferr == nil {
				return s.updateMark(db, existing.ID, mark)
			}
		}
		return fmt.Errorf("save no-table mark %d: %w", stayID, err)
	}
	return nil
}

func (s *AuditStore) updateMark(db *gorm.DB, id uint, mark models.NoTableMark) error {
	err := db.Model(&models.NoTableMark{}).Where("id = ?", id).Updates(map[string]any{
		"dates":      mark.Dates,
		"synced":     mark.Synced,
		"sync_error": mark.SyncError,
	}).Error
	if err != nil {
		return fmt.Errorf("update no-table mark %d: %w", mark.StayBookingID, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
