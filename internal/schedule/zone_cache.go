package schedule

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// defaultZoneCacheSize bounds the number of resolved zones kept in
	// memory; a community rarely spans more than a few dozen zones.
	defaultZoneCacheSize = 128

	// defaultZoneCacheTTL re-resolves zones periodically so tzdb updates
	// are picked up without a restart.
	defaultZoneCacheTTL = 24 * time.Hour
)

// zoneCache memoizes time.LoadLocation results. Matchmaking scans resolve
// one zone per candidate per query; the cache keeps that off the disk path.
type zoneCache struct {
	lru *expirable.LRU[string, *time.Location]
}

func newZoneCache(size int, ttl time.Duration) *zoneCache {
	return &zoneCache{
		lru: expirable.NewLRU[string, *time.Location](size, nil, ttl),
	}
}

// Load returns the location for an IANA zone name, resolving and caching
// on miss.
func (c *zoneCache) Load(name string) (*time.Location, error) {
	if loc, ok := c.lru.Get(name); ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	c.lru.Add(name, loc)
	return loc, nil
}
