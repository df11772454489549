package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"table-booking/models"
)

// StayRecords is the read side the matcher and group coordinator depend on.
type StayRecords interface {
	Records(ctx context.Context, date string) ([]models.StayRecord, error)
}

// StaySource serves the non-cancelled staying list for a date, cached for ttl.
// Failed fetches are never cached.
type StaySource struct {
	fetcher StayFetcher
	cache   StayCache
	ttl     time.Duration
}

func NewStaySource(fetcher StayFetcher, cache StayCache, ttl time.Duration) *StaySource {
	if cache == nil {
		cache = NewMemoryStayCache()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StaySource{fetcher: fetcher, cache: cache, ttl: ttl}
}

func (s *StaySource) Records(ctx context.Context, date string) ([]models.StayRecord, error) {
	if recs, ok := s.cache.Get(ctx, date); ok {
		return recs, nil
	}

	all, err := s.fetcher.StayingGuests(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("staying list %s: %w", date, err)
	}

	active := make([]models.StayRecord, 0, len(all))
	for _, r := range all {
		if r.Active() {
			active = append(active, r)
		}
	}
	s.cache.Set(ctx, date, active, s.ttl)
	return active, nil
}

// Prefetch warms the cache for date. Errors are logged only.
func (s *StaySource) Prefetch(ctx context.Context, date string) {
	if _, err := s.Records(ctx, date); err != nil {
		log.Printf("⚠️ prefetch staying list %s: %v", date, err)
	}
}
