package cacheadapter

import (
	"time"

	"galleria/contexts/gallery/reaction-ledger/domain/entities"
	"galleria/contexts/gallery/reaction-ledger/ports"

	gocache "github.com/patrickmn/go-cache"
)

const defaultTallyTTL = 5 * time.Second

// TallyCache keeps hot tallies in process for a few seconds so repeated
// point lookups for the same item skip the vote store.
type TallyCache struct {
	cache *gocache.Cache
}

func NewTallyCache(ttl time.Duration) *TallyCache {
	if ttl <= 0 {
		ttl = defaultTallyTTL
	}
	return &TallyCache{cache: gocache.New(ttl, time.Minute)}
}

func (c *TallyCache) Get(itemID string) (entities.ItemTally, bool) {
	value, ok := c.cache.Get(itemID)
	if !ok {
		return entities.ItemTally{}, false
	}
	tally, ok := value.(entities.ItemTally)
	return tally, ok
}

func (c *TallyCache) Set(tally entities.ItemTally) {
	c.cache.Set(tally.ItemID, tally, gocache.DefaultExpiration)
}

// Flush empties the cache; used by tests and admin tooling.
func (c *TallyCache) Flush() {
	c.cache.Flush()
}

var _ ports.TallyCache = (*TallyCache)(nil)
