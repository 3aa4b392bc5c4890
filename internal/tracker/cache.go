package tracker

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/cyclone-track-service/internal/domain"
)

// CacheState describes what a lookup found.
type CacheState int

const (
	CacheEmpty CacheState = iota
	CacheFresh
	CacheStale
)

func (s CacheState) String() string {
	switch s {
	case CacheFresh:
		return "fresh"
	case CacheStale:
		return "stale"
	default:
		return "empty"
	}
}

// SnapshotCache holds the last good enumeration result.
type SnapshotCache interface {
	Lookup() (domain.Snapshot, CacheState)
	Put(domain.Snapshot)
	Clear()
}

// TTLCache is a SnapshotCache that turns stale after a fixed TTL. Stale
// entries are still returned so callers can fall back to them.
type TTLCache struct {
	ttl   time.Duration
	clock clockwork.Clock

	mu       sync.RWMutex
	snapshot *domain.Snapshot
	storedAt time.Time
}

// NewTTLCache creates an empty cache.
func NewTTLCache(ttl time.Duration, clock clockwork.Clock) *TTLCache {
	return &TTLCache{ttl: ttl, clock: clock}
}

func (c *TTLCache) Lookup() (domain.Snapshot, CacheState) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil {
		return domain.Snapshot{}, CacheEmpty
	}
	if c.clock.Since(c.storedAt) < c.ttl {
		return *c.snapshot, CacheFresh
	}
	return *c.snapshot, CacheStale
}

func (c *TTLCache) Put(s domain.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = &s
	c.storedAt = c.clock.Now()
}

func (c *TTLCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = nil
	c.storedAt = time.Time{}
}
