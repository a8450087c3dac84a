package wialon

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// AvailabilityCache memoizes UnitIsAvailable results per IMEI for a bounded
// time. Entries can be dropped early with Invalidate once a unit has been
// claimed, so a stale "available" answer is never served past that point.
type AvailabilityCache struct {
	lru *expirable.LRU[string, bool]
}

// NewAvailabilityCache creates a cache holding at most size entries, each
// living for ttl.
func NewAvailabilityCache(size int, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{
		lru: expirable.NewLRU[string, bool](size, nil, ttl),
	}
}

// Get returns the cached availability for imei.
func (c *AvailabilityCache) Get(imei string) (available, ok bool) {
	return c.lru.Get(imei)
}

// Put stores the availability for imei.
func (c *AvailabilityCache) Put(imei string, available bool) {
	c.lru.Add(imei, available)
}

// Invalidate drops imei and reports whether it was present.
func (c *AvailabilityCache) Invalidate(imei string) bool {
	return c.lru.Remove(imei)
}

// Purge drops every entry.
func (c *AvailabilityCache) Purge() {
	c.lru.Purge()
}

// Len returns the number of live entries.
func (c *AvailabilityCache) Len() int {
	return c.lru.Len()
}

type cacheCtxKey struct{}

// ContextWithCache attaches c to ctx. Searchers prefer a context cache over
// their own, which allows caching scoped to a single request.
func ContextWithCache(ctx context.Context, c *AvailabilityCache) context.Context {
	return context.WithValue(ctx, cacheCtxKey{}, c)
}

// CacheFromContext returns the cache attached to ctx, or nil.
func CacheFromContext(ctx context.Context) *AvailabilityCache {
	c, _ := ctx.Value(cacheCtxKey{}).(*AvailabilityCache)
	return c
}
