package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"table-booking/models"
)

const day = "2025-06-01"

func newMatcher(recs ...models.StayRecord) (*ResidentMatcher, *fakeRecorder) {
	rec := &fakeRecorder{}
	return NewResidentMatcher(&fakeStays{recs: map[string][]models.StayRecord{day: recs}}, rec), rec
}

func TestMatchTierOneSingleRecord(t *testing.T) {
	m, audit := newMatcher(stay(101, "", "Smith", "a@x.com", ""))

	res := m.Match(context.Background(), day, "John Smith", "a@x.com", "")
	assert.Equal(t, models.TierExact, res.Tier)
	require.NotNil(t, res.Record)
	assert.Equal(t, 101, res.Record.BookingID)
	assert.Equal(t, []string{"check"}, audit.sources)
}

func TestMatchTierOneFirstRecordWins(t *testing.T) {
	m, _ := newMatcher(
		stay(1, "Ann", "Jones", "other@x.com", ""),
		stay(2, "John", "Smith", "a@x.com", ""),
		stay(3, "John", "Smith", "a@x.com", "07700900123"),
	)

	res := m.Match(context.Background(), day, "John Smith", " A@X.com ", "")
	assert.Equal(t, models.TierExact, res.Tier)
	assert.Equal(t, 2, res.BookingID())
}

func TestMatchTierTwoReportsPhoneOnFile(t *testing.T) {
	m, _ := newMatcher(stay(101, "", "Smith", "a@x.com", ""))

	res := m.Match(context.Background(), day, "John Smith", "different@x.com", "")
	assert.Equal(t, models.TierSurname, res.Tier)
	assert.Equal(t, 101, res.BookingID())
	assert.False(t, res.PhoneOnFile)

	m, _ = newMatcher(stay(102, "", "Smith", "a@x.com", "07700 900123"))
	res = m.Match(context.Background(), day, "John Smith", "different@x.com", "")
	assert.True(t, res.PhoneOnFile)
}

func TestMatchTierTwoPrefersFirstNameMatch(t *testing.T) {
	m, _ := newMatcher(
		stay(1, "Alice", "Smith", "alice@x.com", ""),
		stay(2, "John", "Smith", "john@x.com", "0123456789"),
	)

	res := m.Match(context.Background(), day, "john smith", "nope@x.com", "")
	assert.Equal(t, models.TierSurname, res.Tier)
	assert.Equal(t, 2, res.BookingID())

	res = m.Match(context.Background(), day, "Bob Smith", "nope@x.com", "")
	assert.Equal(t, 1, res.BookingID())
}

func TestMatchUsesPrimaryGuestOnly(t *testing.T) {
	rec := stay(5, "Pat", "Lee", "pat@x.com", "")
	rec.Guests = append(rec.Guests, models.GuestCandidate{FirstName: "Sam", LastName: "Smith", Email: "sam@x.com"})
	m, _ := newMatcher(rec)

	res := m.Match(context.Background(), day, "Sam Smith", "sam@x.com", "")
	assert.Equal(t, models.TierNone, res.Tier)
}

func TestMatchTierThree(t *testing.T) {
	m, _ := newMatcher(stay(1, "Ann", "Jones", "ann@x.com", ""))

	res := m.Match(context.Background(), day, "John Smith", "ann@x.com", "")
	assert.Equal(t, models.TierNone, res.Tier)
	assert.Nil(t, res.Record)
}

func TestMatchEmptySurnameNeverMatches(t *testing.T) {
	m, _ := newMatcher(stay(1, "", "", "", ""))

	res := m.Match(context.Background(), day, "   ", "", "")
	assert.Equal(t, models.TierNone, res.Tier)
	assert.Nil(t, res.Record)
}

func TestMatchSkipsCancelledStays(t *testing.T) {
	cancelled := stay(1, "John", "Smith", "a@x.com", "")
	cancelled.Status = models.StayCancelled
	m, _ := newMatcher(cancelled)

	res := m.Match(context.Background(), day, "John Smith", "a@x.com", "")
	assert.Equal(t, models.TierNone, res.Tier)
}

func TestMatchTierZeroWhenListUnavailable(t *testing.T) {
	m := NewResidentMatcher(&fakeStays{err: errBoom}, nil)

	res := m.Match(context.Background(), day, "John Smith", "a@x.com", "")
	assert.Equal(t, models.TierUnavailable, res.Tier)
	assert.Nil(t, res.Record)
}

func TestVerifyPhone(t *testing.T) {
	m, audit := newMatcher(
		stay(1, "John", "Smith", "a@x.com", ""),
		stay(2, "Jane", "Smith", "b@x.com", "07700 900123"),
	)
	ctx := context.Background()

	res := m.VerifyPhone(ctx, day, "Jane Smith", "+44 7700 900123")
	assert.True(t, res.Verified)
	require.NotNil(t, res.Record)
	assert.Equal(t, 2, res.Record.BookingID)

	assert.False(t, m.VerifyPhone(ctx, day, "Jane Jones", "+44 7700 900123").Verified)
	assert.False(t, m.VerifyPhone(ctx, day, "Jane Smith", "07700 111222").Verified)
	assert.False(t, m.VerifyPhone(ctx, day, "John Smith", "").Verified)

	assert.Equal(t, []models.MatchTier{models.TierExact, models.TierNone, models.TierNone, models.TierNone}, audit.tiers)
}

func TestVerifyReferenceByInternalID(t *testing.T) {
	m, _ := newMatcher(stay(4411, "John", "Smith", "a@x.com", ""))

	res := m.VerifyReference(context.Background(), day, " 4411 ")
	assert.True(t, res.Verified)
	assert.False(t, res.AgentMatch)
	assert.Equal(t, 4411, res.Record.BookingID)
}

func TestVerifyReferenceAgentBookingReportsInternalID(t *testing.T) {
	rec := stay(4411, "John", "Smith", "a@x.com", "")
	rec.ReferenceCode = "BKG-99812"
	rec.TravelAgentName = "Booking.com"
	rec.ViaAgent = true
	m, _ := newMatcher(rec)

	res := m.VerifyReference(context.Background(), day, "BKG-99812")
	assert.True(t, res.Verified)
	assert.True(t, res.AgentMatch)
	assert.Equal(t, "Booking.com", res.AgentName)
	assert.Equal(t, 4411, res.InternalID)
}

func TestVerifyReferenceIsCaseSensitive(t *testing.T) {
	rec := stay(4411, "John", "Smith", "a@x.com", "")
	rec.ReferenceCode = "BKG-99812"
	rec.TravelAgentName = "Booking.com"
	rec.ViaAgent = true
	m, _ := newMatcher(rec)

	res := m.VerifyReference(context.Background(), day, "bkg-99812")
	assert.False(t, res.Verified)
	assert.False(t, res.AgentMatch)
	assert.Zero(t, res.InternalID)
	assert.Nil(t, res.Record)
}

func TestVerifyReferenceExternalCodeWithoutAgent(t *testing.T) {
	rec := stay(4411, "John", "Smith", "a@x.com", "")
	rec.ReferenceCode = "DIRECT-1"
	m, _ := newMatcher(rec)

	res := m.VerifyReference(context.Background(), day, "DIRECT-1")
	assert.True(t, res.Verified)
	assert.False(t, res.AgentMatch)
}

func TestVerifyReferenceNoMatch(t *testing.T) {
	m, _ := newMatcher(stay(4411, "John", "Smith", "a@x.com", ""))

	assert.False(t, m.VerifyReference(context.Background(), day, "9999").Verified)
	assert.False(t, m.VerifyReference(context.Background(), day, "").Verified)
}
