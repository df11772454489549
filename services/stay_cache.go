package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"table-booking/models"
)

// StayCache holds staying lists per date for a short time.
type StayCache interface {
	Get(ctx context.Context, date string) ([]models.StayRecord, bool)
	Set(ctx context.Context, date string, records []models.StayRecord, ttl time.Duration)
}

const stayCachePrefix = "rbw_staying_"

type memoryEntry struct {
	records []models.StayRecord
	expires time.Time
}

// MemoryStayCache is the in-process fallback when Redis is not configured.
type MemoryStayCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStayCache() *MemoryStayCache {
	return &MemoryStayCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryStayCache) Get(_ context.Context, date string) ([]models.StayRecord, bool) {
	m.mu.RLock()
	e, ok := m.entries[date]
	m.mu.RUnlock()
	if !ok || !m.now().Before(e.expires) {
		return nil, false
	}
	return e.records, true
}

func (m *MemoryStayCache) Set(_ context.Context, date string, records []models.StayRecord, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, k)
		}
	}
	m.entries[date] = memoryEntry{records: records, expires: now.Add(ttl)}
}

// RedisStayCache shares staying lists between widget instances.
type RedisStayCache struct {
	client *redis.Client
}

func NewRedisStayCache(client *redis.Client) *RedisStayCache {
	return &RedisStayCache{client: client}
}

func (r *RedisStayCache) Get(ctx context.Context, date string) ([]models.StayRecord, bool) {
	raw, err := r.client.Get(ctx, stayCachePrefix+date).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("⚠️ stay cache get %s: %v", date, err)
		}
		return nil, false
	}
	var records []models.StayRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Printf("⚠️ stay cache decode %s: %v", date, err)
		return nil, false
	}
	return records, true
}

func (r *RedisStayCache) Set(ctx context.Context, date string, records []models.StayRecord, ttl time.Duration) {
	b, err := json.Marshal(records)
	if err != nil {
		log.Printf("⚠️ stay cache encode %s: %v", date, err)
		return
	}
	if err := r.client.Set(ctx, stayCachePrefix+date, b, ttl).Err(); err != nil {
		log.Printf("⚠️ stay cache set %s: %v", date, err)
	}
}
