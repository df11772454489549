// services/resident_matcher.go
package services

import (
	"context"
	"log"
	"strconv"
	"strings"

	"table-booking/models"
)

// MatchRecorder receives the outcome of every resident check.
type MatchRecorder interface {
	RecordMatch(ctx context.Context, date, source string, result models.MatchResult)
}

const (
	msgStayListUnavailable = "Staying list unavailable"
	msgNoSurname           = "No surname given"
)

// ResidentMatcher decides whether a diner is staying at the hotel on a date.
type ResidentMatcher struct {
	stays StayRecords
	audit MatchRecorder
}

func NewResidentMatcher(stays StayRecords, audit MatchRecorder) *ResidentMatcher {
	return &ResidentMatcher{stays: stays, audit: audit}
}

func (m *ResidentMatcher) record(ctx context.Context, date, source string, res models.MatchResult) {
	if m.audit != nil {
		m.audit.RecordMatch(ctx, date, source, res)
	}
}

// Match runs the tiered check against the primary guest of each stay:
//
//	tier 1: surname and email both match (first such stay wins)
//	tier 2: surname only; a first-name match breaks ties
//	tier 3: no surname match
//	tier 0: the staying list could not be read
//
// Phone does not affect the tier.
func (m *ResidentMatcher) Match(ctx context.Context, date, name, email, phone string) models.MatchResult {
	res := m.match(ctx, date, name, email)
	log.Printf("⬅️ ResidentMatcher.Match date=%s tier=%d", date, res.Tier)
	m.record(ctx, date, "check", res)
	return res
}

func (m *ResidentMatcher) match(ctx context.Context, date, name, email string) models.MatchResult {
	recs, err := m.stays.Records(ctx, date)
	if err != nil {
		log.Printf("⚠️ ResidentMatcher.Match: %v", err)
		return models.MatchResult{Tier: models.TierUnavailable, Message: msgStayListUnavailable}
	}

	parsed := ParseName(name)
	if parsed.Last == "" {
		return models.MatchResult{Tier: models.TierNone, Message: msgNoSurname}
	}

	var surnameHits []models.StayRecord
	for _, rec := range recs {
		if !rec.Active() {
			continue
		}
		p := rec.Primary()
		if p == nil || !sameFold(p.LastName, parsed.Last) {
			continue
		}
		if sameFold(p.Email, email) {
			found := rec
			return models.MatchResult{Tier: models.TierExact, Record: &found}
		}
		surnameHits = append(surnameHits, rec)
	}

	if len(surnameHits) == 0 {
		return models.MatchResult{Tier: models.TierNone}
	}

	chosen := surnameHits[0]
	if parsed.First != "" {
		for _, rec := range surnameHits {
			if sameFold(rec.Primary().FirstName, parsed.First) {
				chosen = rec
				break
			}
		}
	}
	return models.MatchResult{
		Tier:        models.TierSurname,
		Record:      &chosen,
		PhoneOnFile: strings.TrimSpace(chosen.Primary().Phone) != "",
	}
}

// VerifyPhone confirms a surname match by the last nine digits of the phone on file.
func (m *ResidentMatcher) VerifyPhone(ctx context.Context, date, name, phone string) models.PhoneVerifyResult {
	out := models.PhoneVerifyResult{}
	defer func() {
		res := models.MatchResult{Tier: models.TierNone}
		if out.Verified {
			res = models.MatchResult{Tier: models.TierExact, Record: out.Record}
		}
		m.record(ctx, date, "phone", res)
	}()

	last := ParseName(name).Last
	if last == "" || NormalisePhone(phone) == "" {
		return out
	}

	recs, err := m.stays.Records(ctx, date)
	if err != nil {
		log.Printf("⚠️ ResidentMatcher.VerifyPhone: %v", err)
		return out
	}
	for _, rec := range recs {
		if !rec.Active() {
			continue
		}
		p := rec.Primary()
		if p == nil || !sameFold(p.LastName, last) {
			continue
		}
		if samePhone(p.Phone, phone) {
			found := rec
			out = models.PhoneVerifyResult{Verified: true, Record: &found}
			return out
		}
	}
	return out
}

// VerifyReference accepts the stay id or the external reference code, compared exactly.
// An external reference on an agent booking reports the internal id so
// the caller can carry it forward.
func (m *ResidentMatcher) VerifyReference(ctx context.Context, date, reference string) models.ReferenceVerifyResult {
	out := models.ReferenceVerifyResult{}
	defer func() {
		res := models.MatchResult{Tier: models.TierNone}
		if out.Verified {
			res = models.MatchResult{Tier: models.TierExact, Record: out.Record}
		}
		m.record(ctx, date, "reference", res)
	}()

	ref := strings.TrimSpace(reference)
	if ref == "" {
		return out
	}

	recs, err := m.stays.Records(ctx, date)
	if err != nil {
		log.Printf("⚠️ ResidentMatcher.VerifyReference: %v", err)
		return out
	}
	for _, rec := range recs {
		if !rec.Active() {
			continue
		}
		found := rec
		if strconv.Itoa(rec.BookingID) == ref {
			out = models.ReferenceVerifyResult{Verified: true, Record: &found}
			return out
		}
		if rec.ReferenceCode != "" && rec.ReferenceCode == ref {
			out = models.ReferenceVerifyResult{Verified: true, Record: &found}
			if rec.ViaAgent {
				out.AgentMatch = true
				out.AgentName = rec.TravelAgentName
				out.InternalID = rec.BookingID
			}
			return out
		}
	}
	return out
}
